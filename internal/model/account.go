package model

// Account is the logged-in principal. Only Admin, *Doctor and *Patient
// implement it; callers dispatch with a type switch.
type Account interface {
	AccountID() string
	AccountRole() Role
	DisplayName() string
	isAccount()
}

// Admin has no stored record; the demo ships a single fixed admin.
type Admin struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

var DemoAdmin = Admin{ID: "admin", Name: "Med Team", Email: "admin@admin.com"}

func (a Admin) AccountID() string   { return a.ID }
func (Admin) AccountRole() Role     { return RoleAdmin }
func (a Admin) DisplayName() string { return a.Name }
func (Admin) isAccount()            {}

func (d *Doctor) AccountID() string   { return d.ID }
func (*Doctor) AccountRole() Role     { return RoleDoctor }
func (d *Doctor) DisplayName() string { return d.Name }
func (*Doctor) isAccount()            {}

func (p *Patient) AccountID() string   { return p.ID }
func (*Patient) AccountRole() Role     { return RolePatient }
func (p *Patient) DisplayName() string { return p.Name }
func (*Patient) isAccount()            {}

// AccountRef is how the current user is persisted: a pointer into the
// doctor/patient collections rather than a stale copy of the record.
type AccountRef struct {
	Role Role   `json:"role"`
	ID   string `json:"id"`
}

func RefOf(a Account) AccountRef {
	return AccountRef{Role: a.AccountRole(), ID: a.AccountID()}
}

// DoctorPatch is a shallow merge; nil fields are left alone.
type DoctorPatch struct {
	Name      *string
	Email     *string
	Phone     *string
	Avatar    *string
	Specialty *string
	Bio       *string
}

func (d *Doctor) Apply(p DoctorPatch) {
	set(&d.Name, p.Name)
	set(&d.Email, p.Email)
	set(&d.Phone, p.Phone)
	set(&d.Avatar, p.Avatar)
	set(&d.Specialty, p.Specialty)
	set(&d.Bio, p.Bio)
}

type PatientPatch struct {
	Name           *string
	Email          *string
	Phone          *string
	Avatar         *string
	DOB            *string
	BloodGroup     *string
	InsuranceID    *string
	CurrentProblem *string
	MedicalHistory []string
}

func (p *Patient) Apply(patch PatientPatch) {
	set(&p.Name, patch.Name)
	set(&p.Email, patch.Email)
	set(&p.Phone, patch.Phone)
	set(&p.Avatar, patch.Avatar)
	set(&p.DOB, patch.DOB)
	set(&p.BloodGroup, patch.BloodGroup)
	set(&p.InsuranceID, patch.InsuranceID)
	set(&p.CurrentProblem, patch.CurrentProblem)
	if patch.MedicalHistory != nil {
		p.MedicalHistory = append([]string(nil), patch.MedicalHistory...)
	}
}

func set(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
