package inventory

import "strings"

// DefaultSSHUser is the login used when no image rule matches.
const DefaultSSHUser = "root"

// SSHUserRule maps an image-name substring to a login.
type SSHUserRule struct {
	Match string
	User  string
}

// DefaultSSHUserRules are checked in order; the last matching rule wins,
// so an image named after both distros gets cloud-user.
func DefaultSSHUserRules() []SSHUserRule {
	return []SSHUserRule{
		{Match: "ubuntu", User: "ubuntu"},
		{Match: "centos", User: "cloud-user"},
	}
}

// SSHUser is the outcome of inferring a login from an instance's image.
// User is always set; it falls back to the default when the image lookup
// failed or no rule matched.
type SSHUser struct {
	User string

	// Inferred is true when a rule matched the image name
	Inferred bool

	// LookupErr records why the image name was unavailable, if it was
	LookupErr error
}

// SSHUserInferrer resolves SSH logins from image names.
type SSHUserInferrer struct {
	rules       []SSHUserRule
	defaultUser string
}

// NewSSHUserInferrer creates an inferrer. Nil rules select the defaults and
// an empty defaultUser selects DefaultSSHUser.
func NewSSHUserInferrer(rules []SSHUserRule, defaultUser string) *SSHUserInferrer {
	if rules == nil {
		rules = DefaultSSHUserRules()
	}
	if defaultUser == "" {
		defaultUser = DefaultSSHUser
	}
	return &SSHUserInferrer{rules: rules, defaultUser: defaultUser}
}

// Infer picks the login for an image. lookupErr is the result of fetching
// the image name; when it is non-nil the default user is returned.
func (s *SSHUserInferrer) Infer(imageName string, lookupErr error) SSHUser {
	result := SSHUser{User: s.defaultUser, LookupErr: lookupErr}
	if lookupErr != nil {
		return result
	}

	name := strings.ToLower(imageName)
	for _, rule := range s.rules {
		if rule.Match != "" && strings.Contains(name, strings.ToLower(rule.Match)) {
			result.User = rule.User
			result.Inferred = true
		}
	}
	return result
}
