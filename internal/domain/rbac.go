package domain

// EnforceRequest asks whether Subject may perform Action on Resource.
// Resource is a menu option path such as "payroll" or "users".
type EnforceRequest struct {
	Subject     string
	IsSuperuser bool
	Resource    string
	Action      string
}
