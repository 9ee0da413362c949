package domain

// PrincipalKind separates the two account spaces. Customer and provider ids
// are independent sequences, so an id is only meaningful together with its kind.
type PrincipalKind string

const (
	KindCustomer PrincipalKind = "customer"
	KindProvider PrincipalKind = "provider"
)

func (k PrincipalKind) Valid() bool {
	return k == KindCustomer || k == KindProvider
}

// Actor is the authenticated caller of a core operation.
type Actor struct {
	ID   int64
	Kind PrincipalKind
	Role UserRole
}

func CustomerActor(id int64) Actor {
	return Actor{ID: id, Kind: KindCustomer, Role: RoleUser}
}

func AdminActor(id int64) Actor {
	return Actor{ID: id, Kind: KindCustomer, Role: RoleAdmin}
}

func ProviderActor(id int64) Actor {
	return Actor{ID: id, Kind: KindProvider, Role: RoleProvider}
}

func (a Actor) IsAdmin() bool {
	return a.Kind == KindCustomer && a.Role == RoleAdmin
}

func (a Actor) IsCustomer(id int64) bool {
	return a.Kind == KindCustomer && a.ID == id
}

func (a Actor) IsProvider(id int64) bool {
	return a.Kind == KindProvider && a.ID == id
}
