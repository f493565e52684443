package inventory

import (
	"fmt"

	"novainventory/internal/models"
)

// AccessIP picks the single address that represents an instance in the
// inventory. The configured primary IPv4 wins, then a floating address,
// then a fixed one. Only the first network attachment is inspected.
func AccessIP(instance models.Instance) (string, error) {
	if instance.AccessIPv4 != "" {
		return instance.AccessIPv4, nil
	}

	var fixed, floating []string
	if network, ok := instance.FirstNetwork(); ok {
		for _, addr := range network.Addresses {
			if addr.Addr == "" {
				continue
			}
			switch addr.Type {
			case models.AddressTypeFixed:
				fixed = append(fixed, addr.Addr)
			case models.AddressTypeFloating:
				floating = append(floating, addr.Addr)
			}
		}
	}

	if len(floating) > 0 {
		return floating[0], nil
	}
	if len(fixed) > 0 {
		return fixed[0], nil
	}

	return "", NewError(ErrResolutionFailed,
		fmt.Sprintf("can't figure out access IP of %s", describe(instance)),
		instance.Name, nil)
}

func describe(instance models.Instance) string {
	if instance.ID == "" {
		return instance.Name
	}
	return fmt.Sprintf("%s (%s)", instance.Name, instance.ID)
}
