package profile

import (
	"mime/multipart"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/nfrund/myprofile/internal/domain"
)

// CustomValidator wraps the go-playground/validator library to implement Echo's Validator interface.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new CustomValidator that also knows the "gender" tag.
func NewValidator() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("gender", func(fl validator.FieldLevel) bool {
		return domain.ValidGender(fl.Field().String())
	})
	return &CustomValidator{validator: v}
}

// Validate implements the echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// DraftRequest carries the field edits of one form post. Absent fields are nil and
// leave the draft alone.
type DraftRequest struct {
	Name     *string `validate:"omitempty,max=200"`
	Phone    *string `validate:"omitempty,max=50"`
	Line1    *string `validate:"omitempty,max=200"`
	Line2    *string `validate:"omitempty,max=200"`
	Gender   *string `validate:"omitempty,gender"`
	DOB      *string `validate:"omitempty,max=10"`
	AboutPet *string `validate:"omitempty,max=2000"`
}

// draftRequestFrom picks the editable fields out of posted form values.
func draftRequestFrom(form url.Values) DraftRequest {
	get := func(key string) *string {
		if vals, ok := form[key]; ok && len(vals) > 0 {
			v := vals[0]
			return &v
		}
		return nil
	}
	return DraftRequest{
		Name:     get("name"),
		Phone:    get("phone"),
		Line1:    get("line1"),
		Line2:    get("line2"),
		Gender:   get("gender"),
		DOB:      get("dob"),
		AboutPet: get("aboutPet"),
	}
}

// Empty reports whether the request carries no field at all.
func (r DraftRequest) Empty() bool {
	return r == DraftRequest{}
}

// Without drops the fields whose posted value equals the draft's, so a resubmitted form
// only carries what the user changed.
func (r DraftRequest) Without(d domain.Profile) DraftRequest {
	changed := func(v *string, current string) *string {
		if v != nil && *v == current {
			return nil
		}
		return v
	}
	return DraftRequest{
		Name:     changed(r.Name, d.Name),
		Phone:    changed(r.Phone, d.Phone),
		Line1:    changed(r.Line1, d.Address.Line1),
		Line2:    changed(r.Line2, d.Address.Line2),
		Gender:   changed(r.Gender, d.Gender),
		DOB:      changed(r.DOB, d.DOB),
		AboutPet: changed(r.AboutPet, d.AboutPet),
	}
}

// AvatarRequest defines the DTO for the avatar selection endpoint.
type AvatarRequest struct {
	Image *multipart.FileHeader `validate:"required"`
}
