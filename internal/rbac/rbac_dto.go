package rbac

type EnforceRequest struct {
	Role     string `json:"role"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

// Policy grants Role the Action on Resource.
type Policy struct {
	Role     string
	Resource string
	Action   string
}

// Inheritance makes Role hold every permission of Parent.
type Inheritance struct {
	Role   string
	Parent string
}
