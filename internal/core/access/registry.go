package access

import "github.com/greenfield-farms/farm-manager/internal/core/domain"

// Entry is one role-tagged section of the management shell.
type Entry struct {
	Key         string
	Title       string
	Path        string
	Requirement Requirement
}

// Section is an entry as resolved for a particular caller.
type Section struct {
	Key      string    `json:"key"`
	Title    string    `json:"title"`
	Path     string    `json:"path"`
	Granted  bool      `json:"granted"`
	Fallback *Fallback `json:"fallback,omitempty"`
}

// Registry is an ordered list of entries. Order is the navigation order.
type Registry struct {
	entries []Entry
}

func NewRegistry(entries ...Entry) *Registry {
	return &Registry{entries: append([]Entry(nil), entries...)}
}

// Entries returns a copy of the registered entries.
func (r *Registry) Entries() []Entry {
	return append([]Entry(nil), r.entries...)
}

// Lookup returns the entry registered under key.
func (r *Registry) Lookup(key string) (Entry, bool) {
	for _, e := range r.entries {
		if e.Key == key {
			return e, true
		}
	}
	return Entry{}, false
}

// Resolve evaluates every entry once for identity. Hidden entries are dropped,
// denied entries in the other modes are kept with their fallback.
func (r *Registry) Resolve(identity *domain.Identity) []Section {
	out := make([]Section, 0, len(r.entries))
	for _, e := range r.entries {
		d := Evaluate(identity, e.Requirement)
		if d.Outcome == RenderNothing {
			continue
		}
		out = append(out, Section{
			Key:      e.Key,
			Title:    e.Title,
			Path:     e.Path,
			Granted:  d.Granted,
			Fallback: d.Fallback,
		})
	}
	return out
}

var (
	staff     = []domain.Role{domain.RoleAdministrator, domain.RoleFarm}
	adminOnly = []domain.Role{domain.RoleAdministrator}
)

// DefaultRegistry declares the management shell.
func DefaultRegistry() *Registry {
	return NewRegistry(
		Entry{Key: "dashboard", Title: "Dashboard", Path: "/v1/dashboard",
			Requirement: Require(ModeInlineNotice, staff...)},
		Entry{Key: "animals", Title: "Animals", Path: "/v1/animals",
			Requirement: Require(ModeInlineNotice, domain.RoleAdministrator, domain.RoleFarm, domain.RoleCustomer)},
		Entry{Key: "breeding", Title: "Breeding records", Path: "/v1/breeding-records",
			Requirement: Require(ModeInlineNotice, staff...)},
		Entry{Key: "health", Title: "Health records", Path: "/v1/health-records",
			Requirement: Require(ModeInlineNotice, staff...)},
		Entry{Key: "inventory", Title: "Inventory", Path: "/v1/inventory",
			Requirement: Require(ModeInlineNotice, staff...)},
		Entry{Key: "facilities", Title: "Facilities", Path: "/v1/facilities",
			Requirement: Require(ModeInlineNotice, staff...)},
		Entry{Key: "veterinarians", Title: "Veterinarians", Path: "/v1/veterinarians",
			Requirement: Require(ModeInlineNotice, staff...)},
		Entry{Key: "suppliers", Title: "Suppliers", Path: "/v1/suppliers",
			Requirement: Require(ModeInlineNotice, staff...)},
		Entry{Key: "customers", Title: "Customers", Path: "/v1/customers",
			Requirement: Require(ModeInlineNotice, adminOnly...)},
		Entry{Key: "transactions", Title: "Transactions", Path: "/v1/transactions",
			Requirement: Require(ModeInlineNotice, adminOnly...)},
		Entry{Key: "content", Title: "Site content", Path: "/v1/content",
			Requirement: Require(ModeHide, adminOnly...)},
		Entry{Key: "users", Title: "Users", Path: "/v1/users",
			Requirement: Require(ModeHide, adminOnly...)},
	)
}
