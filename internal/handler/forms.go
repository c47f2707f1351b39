package handler

import (
	"context"
	"strconv"
	"strings"

	"matchmaker/internal/model"
	"matchmaker/internal/service"
)

// checkbox reads an HTML checkbox: absent or an explicit false value is unchecked.
func checkbox(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "false", "0", "off", "n", "no":
		return false
	default:
		return true
	}
}

func boolField(b bool) string {
	if b {
		return "on"
	}
	return ""
}

// geoPoint converts already validated coordinates.
func geoPoint(lat, long string) model.GeoPoint {
	la, _ := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	lo, _ := strconv.ParseFloat(strings.TrimSpace(long), 64)
	return model.GeoPoint{Lat: la, Long: lo}
}

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// LoginForm is the /login form.
type LoginForm struct {
	Email    string `form:"email" validate:"required,max=260,email"`
	Password string `form:"password" validate:"required,max=30"`
}

// GuestForm is the /guest form.
type GuestForm struct {
	Lat         string `form:"lat" validate:"required,latitude"`
	Long        string `form:"long" validate:"required,longitude"`
	AcceptRules string `form:"accept_rules" validate:"required"`
}

func (f *GuestForm) AcceptRulesChecked() bool { return checkbox(f.AcceptRules) }

// SignupForm is the /profile/new form.
type SignupForm struct {
	FirstName       string `form:"first_name" validate:"required,notblank,max=20"`
	DisplayName     string `form:"display_name" validate:"required,notblank,max=20"`
	Email           string `form:"email" validate:"required,max=260,email"`
	Password        string `form:"password" validate:"required,max=30"`
	ConfirmPassword string `form:"confirm_password" validate:"required,max=30,eqfield=Password"`
	ProfilePic      string `form:"profile_pic" validate:"omitempty,max=2000"`
	Lat             string `form:"lat" validate:"required,latitude"`
	Long            string `form:"long" validate:"required,longitude"`
	Privacy         string `form:"privacy"`
	SeekingProject  string `form:"seeking_project"`
	SeekingHelp     string `form:"seeking_help"`
	AcceptRules     string `form:"accept_rules" validate:"required"`
}

// newSignupForm is the blank form: both "seeking" boxes start ticked.
func newSignupForm() *SignupForm {
	return &SignupForm{SeekingProject: "on", SeekingHelp: "on"}
}

func (f *SignupForm) PrivacyChecked() bool        { return checkbox(f.Privacy) }
func (f *SignupForm) SeekingProjectChecked() bool { return checkbox(f.SeekingProject) }
func (f *SignupForm) SeekingHelpChecked() bool    { return checkbox(f.SeekingHelp) }
func (f *SignupForm) AcceptRulesChecked() bool    { return checkbox(f.AcceptRules) }

func (f *SignupForm) input() service.SignupInput {
	return service.SignupInput{
		Email:          strings.TrimSpace(f.Email),
		Password:       f.Password,
		DisplayName:    strings.TrimSpace(f.DisplayName),
		FirstName:      strings.TrimSpace(f.FirstName),
		ProfilePic:     strings.TrimSpace(f.ProfilePic),
		Location:       geoPoint(f.Lat, f.Long),
		Privacy:        f.PrivacyChecked(),
		SeekingProject: f.SeekingProjectChecked(),
		SeekingHelp:    f.SeekingHelpChecked(),
	}
}

// ProfileForm is the /profile/edit form. Email and password confirm the caller.
type ProfileForm struct {
	FirstName      string `form:"first_name" validate:"required,notblank,max=20"`
	DisplayName    string `form:"display_name" validate:"required,notblank,max=20"`
	Email          string `form:"email" validate:"required,max=260,email"`
	Password       string `form:"password" validate:"required,max=30"`
	ProfilePic     string `form:"profile_pic" validate:"omitempty,max=2000"`
	Lat            string `form:"lat" validate:"required,latitude"`
	Long           string `form:"long" validate:"required,longitude"`
	Privacy        string `form:"privacy"`
	SeekingProject string `form:"seeking_project"`
	SeekingHelp    string `form:"seeking_help"`
}

func profileFormFrom(u *model.User) *ProfileForm {
	return &ProfileForm{
		FirstName:      u.FirstName,
		DisplayName:    u.DisplayName,
		Email:          u.Email,
		ProfilePic:     u.ProfilePic,
		Lat:            formatCoord(u.Latitude),
		Long:           formatCoord(u.Longitude),
		Privacy:        boolField(u.Privacy),
		SeekingProject: boolField(u.SeekingProject),
		SeekingHelp:    boolField(u.SeekingHelp),
	}
}

func (f *ProfileForm) PrivacyChecked() bool        { return checkbox(f.Privacy) }
func (f *ProfileForm) SeekingProjectChecked() bool { return checkbox(f.SeekingProject) }
func (f *ProfileForm) SeekingHelpChecked() bool    { return checkbox(f.SeekingHelp) }

func (f *ProfileForm) input() service.ProfileInput {
	return service.ProfileInput{
		Email:          strings.TrimSpace(f.Email),
		Password:       f.Password,
		DisplayName:    strings.TrimSpace(f.DisplayName),
		FirstName:      strings.TrimSpace(f.FirstName),
		ProfilePic:     strings.TrimSpace(f.ProfilePic),
		Location:       geoPoint(f.Lat, f.Long),
		Privacy:        f.PrivacyChecked(),
		SeekingProject: f.SeekingProjectChecked(),
		SeekingHelp:    f.SeekingHelpChecked(),
	}
}

// ProjectForm is shared by /project/new and /project/:id/edit.
// Dates are not validated here; see service.ParseOptionalDate.
type ProjectForm struct {
	Name            string `form:"name" validate:"required,notblank,max=30"`
	Description     string `form:"description" validate:"required,notblank"`
	ContactInfoType string `form:"contact_info_type" validate:"required,notblank,max=20"`
	ContactInfo     string `form:"contact_info" validate:"required,notblank,max=260"`
	Lat             string `form:"lat" validate:"required,latitude"`
	Long            string `form:"long" validate:"required,longitude"`
	InquiryDeadline string `form:"inquiry_deadline"`
	WorkStart       string `form:"work_start"`
	WorkEnd         string `form:"work_end"`
	PicURL1         string `form:"pic_url1" validate:"omitempty,max=2000"`
	PicURL2         string `form:"pic_url2" validate:"omitempty,max=2000"`
	Tags            string `form:"tags"`
}

func projectFormFrom(p *model.Project) *ProjectForm {
	return &ProjectForm{
		Name:            p.Name,
		Description:     p.Description,
		ContactInfoType: p.ContactInfoType,
		ContactInfo:     p.ContactInfo,
		Lat:             formatCoord(p.Latitude),
		Long:            formatCoord(p.Longitude),
		InquiryDeadline: service.FormatOptionalDate(p.InquiryDeadline),
		WorkStart:       service.FormatOptionalDate(p.WorkStart),
		WorkEnd:         service.FormatOptionalDate(p.WorkEnd),
		PicURL1:         p.PicURL1,
		PicURL2:         p.PicURL2,
		Tags:            service.JoinTagList(p.TagNames()),
	}
}

func (f *ProjectForm) input(ctx context.Context) service.ProjectInput {
	return service.ProjectInput{
		Name:            strings.TrimSpace(f.Name),
		Description:     f.Description,
		ContactInfoType: strings.TrimSpace(f.ContactInfoType),
		ContactInfo:     strings.TrimSpace(f.ContactInfo),
		Location:        geoPoint(f.Lat, f.Long),
		InquiryDeadline: service.ParseOptionalDate(ctx, "inquiry_deadline", f.InquiryDeadline),
		WorkStart:       service.ParseOptionalDate(ctx, "work_start", f.WorkStart),
		WorkEnd:         service.ParseOptionalDate(ctx, "work_end", f.WorkEnd),
		PicURL1:         strings.TrimSpace(f.PicURL1),
		PicURL2:         strings.TrimSpace(f.PicURL2),
		Tags:            service.ParseTagList(f.Tags),
	}
}
