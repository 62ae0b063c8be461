package petfinder

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/go-querystring/query"
)

// AnimalTypeNames are the animal types accepted by the v2 API.
var AnimalTypeNames = []string{
	"dog", "cat", "rabbit", "small-furry", "horse", "bird", "scales-fins-other", "barnyard",
}

// AnimalSearch holds the filters of an animal search. Zero values are omitted
// from the query string.
type AnimalSearch struct {
	Type             string     `url:"type,omitempty" validate:"omitempty,oneof=dog cat rabbit small-furry horse bird scales-fins-other barnyard"`
	Breed            []string   `url:"breed,comma,omitempty"`
	Size             []string   `url:"size,comma,omitempty" validate:"omitempty,dive,oneof=small medium large xlarge"`
	Gender           []string   `url:"gender,comma,omitempty" validate:"omitempty,dive,oneof=male female unknown"`
	Age              []string   `url:"age,comma,omitempty" validate:"omitempty,dive,oneof=baby young adult senior"`
	Color            []string   `url:"color,comma,omitempty"`
	Coat             []string   `url:"coat,comma,omitempty" validate:"omitempty,dive,oneof=short medium long wire hairless curly"`
	Status           []string   `url:"status,comma,omitempty" validate:"omitempty,dive,oneof=adoptable adopted found"`
	Name             string     `url:"name,omitempty"`
	OrganizationID   []string   `url:"organization,comma,omitempty"`
	GoodWithChildren *bool      `url:"good_with_children,omitempty"`
	GoodWithDogs     *bool      `url:"good_with_dogs,omitempty"`
	GoodWithCats     *bool      `url:"good_with_cats,omitempty"`
	HouseTrained     *bool      `url:"house_trained,omitempty"`
	Declawed         *bool      `url:"declawed,omitempty"`
	SpecialNeeds     *bool      `url:"special_needs,omitempty"`
	Location         string     `url:"location,omitempty" validate:"required_with=Distance"`
	Distance         int        `url:"distance,omitempty" validate:"omitempty,min=1,max=500"`
	Before           *time.Time `url:"before,omitempty"`
	After            *time.Time `url:"after,omitempty"`
	Sort             string     `url:"sort,omitempty" validate:"omitempty,oneof=recent -recent distance -distance random"`
	Limit            int        `url:"limit,omitempty" validate:"omitempty,min=1,max=100"`
}

func (s *AnimalSearch) normalize() {
	s.Type = strings.ToLower(strings.TrimSpace(s.Type))
	s.Size = lowerAll(s.Size)
	s.Gender = lowerAll(s.Gender)
	s.Age = lowerAll(s.Age)
	s.Coat = lowerAll(s.Coat)
	s.Status = lowerAll(s.Status)
	s.Sort = strings.ToLower(strings.TrimSpace(s.Sort))
}

func lowerAll(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(strings.TrimSpace(v))
	}
	return out
}

// Values validates the search and encodes it as query parameters.
func (s AnimalSearch) Values() (url.Values, error) {
	s.normalize()
	if err := validateParams(s); err != nil {
		return nil, err
	}
	if s.Before != nil && s.After != nil && !s.After.Before(*s.Before) {
		return nil, &InvalidParametersError{Fields: map[string]string{
			"after": "after must be earlier than before",
		}}
	}
	return query.Values(s)
}

// OrganizationSearch holds the filters of an organization search.
type OrganizationSearch struct {
	Name     string `url:"name,omitempty"`
	Location string `url:"location,omitempty" validate:"required_with=Distance"`
	Distance int    `url:"distance,omitempty" validate:"omitempty,min=1,max=500"`
	State    string `url:"state,omitempty" validate:"omitempty,len=2,alpha"`
	Country  string `url:"country,omitempty" validate:"omitempty,len=2,alpha"`
	Query    string `url:"query,omitempty"`
	Sort     string `url:"sort,omitempty" validate:"omitempty,oneof=distance -distance name -name country -country state -state"`
	Limit    int    `url:"limit,omitempty" validate:"omitempty,min=1,max=100"`
}

// Values validates the search and encodes it as query parameters.
func (s OrganizationSearch) Values() (url.Values, error) {
	s.State = strings.ToUpper(strings.TrimSpace(s.State))
	s.Country = strings.ToUpper(strings.TrimSpace(s.Country))
	s.Sort = strings.ToLower(strings.TrimSpace(s.Sort))
	if err := validateParams(s); err != nil {
		return nil, err
	}
	return query.Values(s)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report query parameter names instead of Go field names.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("url"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateParams runs the struct tag rules and folds every failure into a
// single InvalidParametersError.
func validateParams(params any) error {
	err := validate.Struct(params)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidParameters, err)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name, _, _ := strings.Cut(fe.Field(), "[")
		msg := describeFieldError(name, fe)
		if prev, ok := fields[name]; ok {
			msg = prev + "; " + msg
		}
		fields[name] = msg
	}
	return &InvalidParametersError{Fields: fields}
}

func describeFieldError(name string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s %v is not valid, must be one of: %s",
			name, fe.Value(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min":
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", name, fe.Param())
	case "required_with":
		return fmt.Sprintf("%s is required when %s is set", name, strings.ToLower(fe.Param()))
	case "len", "alpha":
		return fmt.Sprintf("%s must be a two letter code", name)
	default:
		return fmt.Sprintf("%s failed %s validation", name, fe.Tag())
	}
}

// validateTypes checks animal type names, reporting every unknown one at once.
func validateTypes(types []string) ([]string, error) {
	normalized := make([]string, 0, len(types))
	var unknown []string
	for _, t := range types {
		t = strings.ToLower(strings.TrimSpace(t))
		if !slices.Contains(AnimalTypeNames, t) {
			unknown = append(unknown, fmt.Sprintf("%q", t))
			continue
		}
		normalized = append(normalized, t)
	}

	if len(unknown) > 0 {
		return nil, &InvalidParametersError{Fields: map[string]string{
			"type": fmt.Sprintf("animal types %s are not valid, must be one of: %s",
				strings.Join(unknown, ", "), strings.Join(AnimalTypeNames, ", ")),
		}}
	}
	return normalized, nil
}
