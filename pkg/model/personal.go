package model

// Personal field names.
const (
	FieldFullName         = "fullName"
	FieldProposedPosition = "proposedPosition"
	FieldLastCompany      = "lastCompany"
	FieldPlaceOfBirth     = "placeOfBirth"
	FieldDateOfBirth      = "dateOfBirth"
	FieldNationality      = "nationality"
	FieldProfilePicture   = "profilePicture"
	FieldAddress          = "address"
	FieldEmail            = "email"
	FieldPhone            = "phone"
	FieldWebsite          = "website"
	FieldLinkedIn         = "linkedin"
	FieldInstagram        = "instagram"
	FieldFacebook         = "facebook"
	FieldTwitter          = "twitter"
	FieldGender           = "gender"
	FieldReligion         = "religion"
	FieldMaritalStatus    = "maritalStatus"
)

// PersonalFields lists the personal schema in form order.
var PersonalFields = []string{
	FieldFullName, FieldProposedPosition, FieldLastCompany, FieldPlaceOfBirth,
	FieldDateOfBirth, FieldNationality, FieldAddress, FieldEmail, FieldPhone,
	FieldWebsite, FieldLinkedIn, FieldInstagram, FieldFacebook, FieldTwitter,
	FieldGender, FieldReligion, FieldMaritalStatus, FieldProfilePicture,
}

// Personal holds contact and biographical data. ProfilePicture is an inline
// data URI, nil when no picture was uploaded.
type Personal struct {
	FullName         string  `json:"fullName"`
	ProposedPosition string  `json:"proposedPosition"`
	LastCompany      string  `json:"lastCompany"`
	PlaceOfBirth     string  `json:"placeOfBirth"`
	DateOfBirth      string  `json:"dateOfBirth"`
	Nationality      string  `json:"nationality"`
	ProfilePicture   *string `json:"profilePicture"`
	Address          string  `json:"address"`
	Email            string  `json:"email"`
	Phone            string  `json:"phone"`
	Website          string  `json:"website"`
	LinkedIn         string  `json:"linkedin"`
	Instagram        string  `json:"instagram"`
	Facebook         string  `json:"facebook"`
	Twitter          string  `json:"twitter"`
	Gender           string  `json:"gender"`
	Religion         string  `json:"religion"`
	MaritalStatus    string  `json:"maritalStatus"`
}

// Picture returns the profile picture data URI or "".
func (p Personal) Picture() string {
	if p.ProfilePicture == nil {
		return ""
	}
	return *p.ProfilePicture
}

// Get returns the string value of a personal field.
func (p Personal) Get(field string) string {
	if ptr := p.stringField(field); ptr != nil {
		return *ptr
	}
	if field == FieldProfilePicture {
		return p.Picture()
	}
	panic(unknownField("personal", field))
}

// WithField returns a copy of p with one field replaced. The profile picture
// accepts a string (empty clears it) or nil.
func (p Personal) WithField(field string, value any) Personal {
	p = p.clone()
	if field == FieldProfilePicture {
		if value == nil {
			p.ProfilePicture = nil
			return p
		}
		picture := asString("personal", field, value)
		if picture == "" {
			p.ProfilePicture = nil
			return p
		}
		p.ProfilePicture = &picture
		return p
	}
	ptr := p.stringField(field)
	if ptr == nil {
		panic(unknownField("personal", field))
	}
	*ptr = asString("personal", field, value)
	return p
}

func (p *Personal) stringField(field string) *string {
	switch field {
	case FieldFullName:
		return &p.FullName
	case FieldProposedPosition:
		return &p.ProposedPosition
	case FieldLastCompany:
		return &p.LastCompany
	case FieldPlaceOfBirth:
		return &p.PlaceOfBirth
	case FieldDateOfBirth:
		return &p.DateOfBirth
	case FieldNationality:
		return &p.Nationality
	case FieldAddress:
		return &p.Address
	case FieldEmail:
		return &p.Email
	case FieldPhone:
		return &p.Phone
	case FieldWebsite:
		return &p.Website
	case FieldLinkedIn:
		return &p.LinkedIn
	case FieldInstagram:
		return &p.Instagram
	case FieldFacebook:
		return &p.Facebook
	case FieldTwitter:
		return &p.Twitter
	case FieldGender:
		return &p.Gender
	case FieldReligion:
		return &p.Religion
	case FieldMaritalStatus:
		return &p.MaritalStatus
	}
	return nil
}

func (p Personal) clone() Personal {
	if p.ProfilePicture != nil {
		picture := *p.ProfilePicture
		p.ProfilePicture = &picture
	}
	return p
}

// Language proficiency field names.
const (
	ProficiencyNational = "national"
	ProficiencyForeign  = "foreign"
	ProficiencyLocal    = "local"
)

// LanguageProficiency holds the three fixed self-ratings.
type LanguageProficiency struct {
	National string `json:"national"`
	Foreign  string `json:"foreign"`
	Local    string `json:"local"`
}

// WithField returns a copy with one rating replaced.
func (l LanguageProficiency) WithField(field string, value any) LanguageProficiency {
	text := asString("languageProficiency", field, value)
	switch field {
	case ProficiencyNational:
		l.National = text
	case ProficiencyForeign:
		l.Foreign = text
	case ProficiencyLocal:
		l.Local = text
	default:
		panic(unknownField("languageProficiency", field))
	}
	return l
}
