// Package schema describes the persisted document as an OpenAPI schema and
// validates import payloads against it.
//
// Loading from storage never validates: Hydrate tolerates and repairs damaged
// data. Files a user explicitly imports are checked first so that obviously
// wrong input is reported instead of silently dropped.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-cvgen/pkg/model"
)

// ErrInvalidDocument wraps every validation failure.
var ErrInvalidDocument = errors.New("schema: invalid document")

var (
	documentSchemaOnce sync.Once
	documentSchema     *openapi3.Schema
)

// DocumentSchema returns the shared schema of the persisted document. Sections
// are optional and may be null; unknown properties are allowed so legacy
// section names still pass.
func DocumentSchema() *openapi3.Schema {
	documentSchemaOnce.Do(func() {
		documentSchema = buildDocumentSchema()
	})
	return documentSchema
}

func buildDocumentSchema() *openapi3.Schema {
	personal := openapi3.NewObjectSchema().WithNullable()
	for _, field := range []string{
		model.FieldFullName, model.FieldProposedPosition, model.FieldLastCompany,
		model.FieldPlaceOfBirth, model.FieldDateOfBirth, model.FieldNationality,
		model.FieldAddress, model.FieldEmail, model.FieldPhone, model.FieldWebsite,
		model.FieldLinkedIn, model.FieldInstagram, model.FieldFacebook, model.FieldTwitter,
		model.FieldGender, model.FieldReligion, model.FieldMaritalStatus,
	} {
		personal.WithProperty(field, openapi3.NewStringSchema())
	}
	personal.WithProperty(model.FieldProfilePicture, openapi3.NewStringSchema().WithNullable())

	education := entry(map[string]*openapi3.Schema{
		"institutionName": openapi3.NewStringSchema(),
		"degree":          openapi3.NewStringSchema(),
		"graduationYear":  openapi3.NewStringSchema(),
		"description":     openapi3.NewStringSchema(),
		"isFormal":        openapi3.NewBoolSchema(),
	})
	experience := entry(map[string]*openapi3.Schema{
		"activityName":     openapi3.NewStringSchema(),
		"location":         openapi3.NewStringSchema(),
		"clientName":       openapi3.NewStringSchema(),
		"companyName":      openapi3.NewStringSchema(),
		"responsibilities": openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema()).WithNullable(),
		"startDate":        openapi3.NewStringSchema(),
		"endDate":          openapi3.NewStringSchema(),
		"jobTitle":         openapi3.NewStringSchema(),
		"employmentStatus": openapi3.NewStringSchema(),
		"referenceInfo":    openapi3.NewStringSchema(),
	})
	skill := entry(map[string]*openapi3.Schema{
		"name":        openapi3.NewStringSchema(),
		"level":       level(),
		"description": openapi3.NewStringSchema(),
	})
	language := entry(map[string]*openapi3.Schema{
		"name":  openapi3.NewStringSchema(),
		"level": level(),
	})
	reference := entry(map[string]*openapi3.Schema{
		"name":    openapi3.NewStringSchema(),
		"company": openapi3.NewStringSchema(),
		"contact": openapi3.NewStringSchema(),
	})
	hobby := entry(map[string]*openapi3.Schema{
		"name": openapi3.NewStringSchema(),
	})
	proficiency := openapi3.NewObjectSchema().WithNullable().WithProperties(map[string]*openapi3.Schema{
		"national": openapi3.NewStringSchema(),
		"foreign":  openapi3.NewStringSchema(),
		"local":    openapi3.NewStringSchema(),
	})

	return openapi3.NewObjectSchema().WithProperties(map[string]*openapi3.Schema{
		"personal":            personal,
		"summary":             openapi3.NewStringSchema().WithNullable(),
		"education":           list(education),
		"experience":          list(experience),
		"languageProficiency": proficiency,
		"skills":              list(skill),
		"references":          list(reference),
		"hobbies":             list(hobby),
		"languages":           list(language),
	})
}

func entry(props map[string]*openapi3.Schema) *openapi3.Schema {
	props["id"] = openapi3.NewStringSchema()
	return openapi3.NewObjectSchema().WithProperties(props)
}

func list(item *openapi3.Schema) *openapi3.Schema {
	return openapi3.NewArraySchema().WithItems(item).WithNullable()
}

func level() *openapi3.Schema {
	return openapi3.NewIntegerSchema().WithMin(model.MinLevel).WithMax(model.MaxLevel)
}

// Validate checks an import payload. Every violation is reported, joined in
// the returned error.
func Validate(raw []byte) error {
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if _, ok := value.(map[string]any); !ok {
		return fmt.Errorf("%w: top level must be an object", ErrInvalidDocument)
	}
	if err := DocumentSchema().VisitJSON(value, openapi3.MultiErrors()); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return nil
}
