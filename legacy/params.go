package legacy

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/go-querystring/query"

	"github.com/s0up4200/petpy/petfinder"
)

// Format is the response format requested from the API.
type Format string

const (
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
)

// AnimalNames are the animal values accepted by the v1 API.
var AnimalNames = []string{"barnyard", "bird", "cat", "dog", "horse", "reptile", "smallfurry"}

// DefaultCount is the page size the API uses when count is not given.
const DefaultCount = 25

// PageParams select a window of a result set.
type PageParams struct {
	Offset int `url:"offset,omitempty" validate:"min=0"`
	Count  int `url:"count,omitempty" validate:"omitempty,min=1,max=1000"`
}

func (p PageParams) count() int {
	if p.Count > 0 {
		return p.Count
	}
	return DefaultCount
}

// PetFindParams are the filters of pet.find.
type PetFindParams struct {
	Location string `url:"location" validate:"required"`
	Animal   string `url:"animal,omitempty" validate:"omitempty,oneof=barnyard bird cat dog horse reptile smallfurry"`
	Breed    string `url:"breed,omitempty"`
	Size     string `url:"size,omitempty" validate:"omitempty,oneof=S M L XL"`
	Sex      string `url:"sex,omitempty" validate:"omitempty,oneof=M F"`
	Age      string `url:"age,omitempty" validate:"omitempty,oneof=Baby Young Adult Senior"`
	Output   string `url:"output,omitempty" validate:"omitempty,oneof=basic full"`
	PageParams
}

// RandomParams are the filters of pet.getRandom.
type RandomParams struct {
	Animal    string `url:"animal,omitempty" validate:"omitempty,oneof=barnyard bird cat dog horse reptile smallfurry"`
	Breed     string `url:"breed,omitempty"`
	Size      string `url:"size,omitempty" validate:"omitempty,oneof=S M L XL"`
	Sex       string `url:"sex,omitempty" validate:"omitempty,oneof=M F"`
	Location  string `url:"location,omitempty"`
	ShelterID string `url:"shelterid,omitempty"`
	Output    string `url:"output,omitempty" validate:"omitempty,oneof=id basic full"`
}

// ShelterFindParams are the filters of shelter.find.
type ShelterFindParams struct {
	Location string `url:"location" validate:"required"`
	Name     string `url:"name,omitempty"`
	PageParams
}

// ShelterPetsParams are the filters of shelter.getPets.
type ShelterPetsParams struct {
	ID     string `url:"id" validate:"required"`
	Status string `url:"status,omitempty" validate:"omitempty,oneof=A H P X"`
	Output string `url:"output,omitempty" validate:"omitempty,oneof=id basic full"`
	PageParams
}

type breedListParams struct {
	Animal string `url:"animal" validate:"required,oneof=barnyard bird cat dog horse reptile smallfurry"`
}

type byBreedParams struct {
	Animal string `url:"animal" validate:"required,oneof=barnyard bird cat dog horse reptile smallfurry"`
	Breed  string `url:"breed" validate:"required"`
	PageParams
}

type idParams struct {
	ID string `url:"id" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("url"), ",")
		return name
	})
	return v
}

// encode validates params and builds the query string for a call.
func encode(params any, format Format) (url.Values, error) {
	fields := map[string]string{}
	if format != FormatJSON && format != FormatXML {
		fields["format"] = fmt.Sprintf("format %q is not valid, must be one of: json, xml", format)
	}

	if err := validate.Struct(params); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, fmt.Errorf("%w: %v", petfinder.ErrInvalidParameters, err)
		}
		for _, fe := range verrs {
			fields[fe.Field()] = describe(fe)
		}
	}

	if len(fields) > 0 {
		return nil, &petfinder.InvalidParametersError{Fields: fields}
	}

	values, err := query.Values(params)
	if err != nil {
		return nil, err
	}
	values.Set("format", string(format))
	return values, nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s %v is not valid, must be one of: %s",
			fe.Field(), fe.Value(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
