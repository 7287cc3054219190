package domain

// Address is the two-line postal address of a profile.
type Address struct {
	Line1 string `json:"line1"`
	Line2 string `json:"line2"`
}

// AddressData is the wire shape of an address. Either line may be absent.
type AddressData struct {
	Line1 *string `json:"line1,omitempty"`
	Line2 *string `json:"line2,omitempty"`
}

// UserData is the profile exactly as the backend reports it.
// Every field is optional; a nil pointer means the backend did not send it.
type UserData struct {
	Name     *string      `json:"name,omitempty"`
	Email    *string      `json:"email,omitempty"`
	Phone    *string      `json:"phone,omitempty"`
	Address  *AddressData `json:"address,omitempty"`
	Gender   *string      `json:"gender,omitempty"`
	DOB      *string      `json:"dob,omitempty"`
	Pet      *string      `json:"pet,omitempty"`
	AboutPet *string      `json:"aboutPet,omitempty"`
	Image    *string      `json:"image,omitempty"`
}

// Profile is the normalized view of UserData. No field is ever undefined:
// missing text becomes "" and a missing image becomes DefaultImage.
//
// Email and Pet are read-only from the profile page's point of view.
type Profile struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	Address  Address `json:"address"`
	Gender   string  `json:"gender"`
	DOB      string  `json:"dob"`
	Pet      string  `json:"pet"`
	AboutPet string  `json:"aboutPet"`
	Image    string  `json:"image"`
}

// Genders lists the accepted gender values. The empty string means "not selected".
var Genders = []string{"Male", "Female", "Non-binary", "Prefer not to say"}

// ValidGender reports whether g is empty or one of Genders.
func ValidGender(g string) bool {
	if g == "" {
		return true
	}
	for _, v := range Genders {
		if v == g {
			return true
		}
	}
	return false
}

// Normalize fills every undefined field of u with its default.
// A nil u yields the all-default profile.
func Normalize(u *UserData) Profile {
	if u == nil {
		u = &UserData{}
	}
	p := Profile{
		Name:     deref(u.Name),
		Email:    deref(u.Email),
		Phone:    deref(u.Phone),
		Gender:   deref(u.Gender),
		DOB:      deref(u.DOB),
		Pet:      deref(u.Pet),
		AboutPet: deref(u.AboutPet),
		Image:    DefaultImage,
	}
	if u.Address != nil {
		p.Address = Address{
			Line1: deref(u.Address.Line1),
			Line2: deref(u.Address.Line2),
		}
	}
	if u.Image != nil {
		p.Image = *u.Image
	}
	return p
}

// Patch returns the UserData carrying only the fields a profile edit may change:
// name, phone, address, gender, dob and aboutPet. Email, pet and image are left nil
// so a merge never touches them.
func Patch(p Profile) UserData {
	return UserData{
		Name:  ptr(p.Name),
		Phone: ptr(p.Phone),
		Address: &AddressData{
			Line1: ptr(p.Address.Line1),
			Line2: ptr(p.Address.Line2),
		},
		Gender:   ptr(p.Gender),
		DOB:      ptr(p.DOB),
		AboutPet: ptr(p.AboutPet),
	}
}

// Merge overlays every non-nil field of patch onto base and returns the result.
// The merge is shallow: a non-nil patch address replaces the whole address.
func Merge(base *UserData, patch UserData) *UserData {
	var out UserData
	if base != nil {
		out = *base
	}
	if patch.Name != nil {
		out.Name = patch.Name
	}
	if patch.Email != nil {
		out.Email = patch.Email
	}
	if patch.Phone != nil {
		out.Phone = patch.Phone
	}
	if patch.Address != nil {
		addr := *patch.Address
		out.Address = &addr
	}
	if patch.Gender != nil {
		out.Gender = patch.Gender
	}
	if patch.DOB != nil {
		out.DOB = patch.DOB
	}
	if patch.Pet != nil {
		out.Pet = patch.Pet
	}
	if patch.AboutPet != nil {
		out.AboutPet = patch.AboutPet
	}
	if patch.Image != nil {
		out.Image = patch.Image
	}
	return &out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ptr(s string) *string { return &s }
