// Package access decides whether role-protected content is shown to an
// identity and, when it is not, what is shown instead.
//
// Roles never imply one another: a requirement must list every role it
// admits.
package access

import (
	"strings"

	"github.com/greenfield-farms/farm-manager/internal/core/domain"
)

// Mode selects the presentation used when access is denied.
type Mode string

const (
	ModeBlock        Mode = "block"
	ModeInlineNotice Mode = "inline-notice"
	ModeHide         Mode = "hide"
)

// Reason explains a decision.
type Reason string

const (
	ReasonNone            Reason = ""
	ReasonUnauthenticated Reason = "unauthenticated"
	ReasonWrongRole       Reason = "wrong_role"
)

// Outcome is what the caller should render.
type Outcome string

const (
	RenderChildren Outcome = "render_children"
	RenderFallback Outcome = "render_fallback"
	RenderNothing  Outcome = "render_nothing"
)

// FallbackKind identifies the fallback presentation.
type FallbackKind string

const (
	FallbackSignIn                FallbackKind = "sign_in"
	FallbackInsufficientPrivilege FallbackKind = "insufficient_privilege"
	FallbackNotice                FallbackKind = "notice"
)

// Fallback is the content shown in place of protected content.
type Fallback struct {
	Kind    FallbackKind `json:"kind"`
	Title   string       `json:"title"`
	Message string       `json:"message"`
}

// Requirement is declared where protected content is defined.
type Requirement struct {
	Roles []domain.Role
	Mode  Mode
}

// Require builds a requirement admitting exactly the given roles.
func Require(mode Mode, roles ...domain.Role) Requirement {
	return Requirement{Roles: roles, Mode: mode}
}

// Admits reports whether role is listed in the requirement.
func (r Requirement) Admits(role domain.Role) bool {
	for _, allowed := range r.Roles {
		if allowed == role {
			return true
		}
	}
	return false
}

// Decision is the result of a single evaluation. It is never stored.
type Decision struct {
	Granted  bool      `json:"granted"`
	Reason   Reason    `json:"reason,omitempty"`
	Outcome  Outcome   `json:"outcome"`
	Fallback *Fallback `json:"fallback,omitempty"`
}

// Evaluate decides access for identity against req. A nil identity is a
// signed-out caller, not an error.
func Evaluate(identity *domain.Identity, req Requirement) Decision {
	if identity != nil && req.Admits(identity.Role) {
		return Decision{Granted: true, Outcome: RenderChildren}
	}

	reason := ReasonWrongRole
	if identity == nil {
		reason = ReasonUnauthenticated
	}

	switch req.Mode {
	case ModeHide:
		return Decision{Reason: reason, Outcome: RenderNothing}
	case ModeBlock:
		return Decision{Reason: reason, Outcome: RenderFallback, Fallback: blockingFallback(reason, req.Roles)}
	default:
		return Decision{Reason: reason, Outcome: RenderFallback, Fallback: &Fallback{
			Kind:    FallbackNotice,
			Title:   "Restricted section",
			Message: "This section requires " + DescribeRoles(req.Roles) + ".",
		}}
	}
}

func blockingFallback(reason Reason, roles []domain.Role) *Fallback {
	if reason == ReasonUnauthenticated {
		return &Fallback{
			Kind:    FallbackSignIn,
			Title:   "Sign in required",
			Message: "Please sign in to continue.",
		}
	}
	return &Fallback{
		Kind:    FallbackInsufficientPrivilege,
		Title:   "Access denied",
		Message: "Your account does not have permission to view this page. It requires " + DescribeRoles(roles) + ".",
	}
}

// DescribeRoles renders a role set for people, e.g. "farm or administrator access".
func DescribeRoles(roles []domain.Role) string {
	if len(roles) == 0 {
		return "no access"
	}
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	if len(names) == 1 {
		return names[0] + " access"
	}
	return strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1] + " access"
}
