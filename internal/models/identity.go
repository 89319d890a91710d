package models

// Roles recognized by the access filter.
const (
	RoleSuperUser    = "super_user"
	RoleCategoryUser = "category_user"
)

// Identity is a dashboard login. Category is meaningful only for
// category-scoped users and names the single MainCategory partition that
// identity may see.
type Identity struct {
	Email       string `json:"email" yaml:"email"`
	Password    string `json:"-" yaml:"password"`
	Role        string `json:"role" yaml:"role"`
	DisplayName string `json:"name" yaml:"name"`
	Category    string `json:"category,omitempty" yaml:"category,omitempty"`
}

// IsSuperUser reports whether the identity has unrestricted visibility.
func (i *Identity) IsSuperUser() bool {
	return i != nil && i.Role == RoleSuperUser
}
