package petfinder

import (
	"strings"
	"time"
)

// TimestampLayout is the layout of timestamps in Petfinder responses.
const TimestampLayout = "2006-01-02T15:04:05-0700"

// ParseTimestamp parses a Petfinder timestamp, accepting RFC 3339 as well.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(TimestampLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// Link is a HAL style link object
type Link struct {
	Href string `json:"href"`
}

// Breeds describes the breed information of an animal
type Breeds struct {
	Primary   *string `json:"primary"`
	Secondary *string `json:"secondary"`
	Mixed     bool    `json:"mixed"`
	Unknown   bool    `json:"unknown"`
}

// Colors describes the coat colors of an animal
type Colors struct {
	Primary   *string `json:"primary"`
	Secondary *string `json:"secondary"`
	Tertiary  *string `json:"tertiary"`
}

// Attributes holds the yes/no facts the shelter reports about an animal
type Attributes struct {
	SpayedNeutered bool  `json:"spayed_neutered"`
	HouseTrained   bool  `json:"house_trained"`
	Declawed       *bool `json:"declawed"`
	SpecialNeeds   bool  `json:"special_needs"`
	ShotsCurrent   bool  `json:"shots_current"`
}

// Environment describes what an animal is good with. Nil means unknown.
type Environment struct {
	Children *bool `json:"children"`
	Dogs     *bool `json:"dogs"`
	Cats     *bool `json:"cats"`
}

// Photo is a set of sizes of the same picture
type Photo struct {
	Small  string `json:"small,omitempty"`
	Medium string `json:"medium,omitempty"`
	Large  string `json:"large,omitempty"`
	Full   string `json:"full,omitempty"`
}

// Video is an embeddable video snippet
type Video struct {
	Embed string `json:"embed"`
}

// Address is a postal address
type Address struct {
	Address1 *string `json:"address1"`
	Address2 *string `json:"address2"`
	City     string  `json:"city"`
	State    string  `json:"state"`
	Postcode string  `json:"postcode"`
	Country  string  `json:"country"`
}

// Contact holds the contact details of an animal listing
type Contact struct {
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Address Address `json:"address"`
}

// AnimalLinks are the related resources of an animal
type AnimalLinks struct {
	Self         Link `json:"self"`
	Type         Link `json:"type"`
	Organization Link `json:"organization"`
}

// Animal represents a Petfinder animal record
type Animal struct {
	ID                   int         `json:"id"`
	OrganizationID       string      `json:"organization_id"`
	URL                  string      `json:"url"`
	Type                 string      `json:"type"`
	Species              string      `json:"species"`
	Breeds               Breeds      `json:"breeds"`
	Colors               Colors      `json:"colors"`
	Age                  string      `json:"age"`
	Gender               string      `json:"gender"`
	Size                 string      `json:"size"`
	Coat                 *string     `json:"coat"`
	Attributes           Attributes  `json:"attributes"`
	Environment          Environment `json:"environment"`
	Tags                 []string    `json:"tags"`
	Name                 string      `json:"name"`
	Description          *string     `json:"description"`
	OrganizationAnimalID *string     `json:"organization_animal_id"`
	Photos               []Photo     `json:"photos"`
	PrimaryPhotoCropped  *Photo      `json:"primary_photo_cropped"`
	Videos               []Video     `json:"videos"`
	Status               string      `json:"status"`
	StatusChangedAt      string      `json:"status_changed_at"`
	PublishedAt          string      `json:"published_at"`
	Distance             *float64    `json:"distance"`
	Contact              Contact     `json:"contact"`
	Links                AnimalLinks `json:"_links"`
}

// Published parses PublishedAt. Petfinder timestamps carry a +0000 style offset.
func (a *Animal) Published() (time.Time, error) {
	return ParseTimestamp(a.PublishedAt)
}

// IsAdoptable reports whether the animal is still up for adoption
func (a *Animal) IsAdoptable() bool {
	return strings.EqualFold(a.Status, "adoptable")
}

// Hours are the opening hours of an organization per weekday
type Hours struct {
	Monday    *string `json:"monday"`
	Tuesday   *string `json:"tuesday"`
	Wednesday *string `json:"wednesday"`
	Thursday  *string `json:"thursday"`
	Friday    *string `json:"friday"`
	Saturday  *string `json:"saturday"`
	Sunday    *string `json:"sunday"`
}

// Adoption describes an organization's adoption policy
type Adoption struct {
	Policy *string `json:"policy"`
	URL    *string `json:"url"`
}

// SocialMedia lists an organization's social profiles
type SocialMedia struct {
	Facebook  *string `json:"facebook"`
	Twitter   *string `json:"twitter"`
	Youtube   *string `json:"youtube"`
	Instagram *string `json:"instagram"`
	Pinterest *string `json:"pinterest"`
}

// OrganizationLinks are the related resources of an organization
type OrganizationLinks struct {
	Self    Link `json:"self"`
	Animals Link `json:"animals"`
}

// Organization represents an animal welfare organization (a shelter)
type Organization struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Email            *string           `json:"email"`
	Phone            *string           `json:"phone"`
	Address          Address           `json:"address"`
	Hours            Hours             `json:"hours"`
	URL              string            `json:"url"`
	Website          *string           `json:"website"`
	MissionStatement *string           `json:"mission_statement"`
	Adoption         Adoption          `json:"adoption"`
	SocialMedia      SocialMedia       `json:"social_media"`
	Photos           []Photo           `json:"photos"`
	Distance         *float64          `json:"distance"`
	Links            OrganizationLinks `json:"_links"`
}

// TypeLinks are the related resources of an animal type
type TypeLinks struct {
	Self   Link `json:"self"`
	Breeds Link `json:"breeds"`
}

// AnimalType describes one of the animal types Petfinder knows about
type AnimalType struct {
	Name    string    `json:"name"`
	Coats   []string  `json:"coats"`
	Colors  []string  `json:"colors"`
	Genders []string  `json:"genders"`
	Links   TypeLinks `json:"_links"`
}

// BreedLinks are the related resources of a breed
type BreedLinks struct {
	Type Link `json:"type"`
}

// Breed is a breed name of an animal type
type Breed struct {
	Name  string     `json:"name"`
	Links BreedLinks `json:"_links"`
}

// PaginationLinks point at the neighbouring pages
type PaginationLinks struct {
	Previous *Link `json:"previous,omitempty"`
	Next     *Link `json:"next,omitempty"`
}

// Pagination contains pagination information of a search
type Pagination struct {
	CountPerPage int             `json:"count_per_page"`
	TotalCount   int             `json:"total_count"`
	CurrentPage  int             `json:"current_page"`
	TotalPages   int             `json:"total_pages"`
	Links        PaginationLinks `json:"_links"`
}

// HasMorePages checks if there are more pages to fetch
func (p *Pagination) HasMorePages() bool {
	return p.CurrentPage < p.TotalPages
}

// AnimalsPage is the result of an animal search, possibly spanning several pages
type AnimalsPage struct {
	Animals      []Animal   `json:"animals"`
	Pagination   Pagination `json:"pagination"`
	PagesFetched int        `json:"-"`
}

// OrganizationsPage is the result of an organization search
type OrganizationsPage struct {
	Organizations []Organization `json:"organizations"`
	Pagination    Pagination     `json:"pagination"`
	PagesFetched  int            `json:"-"`
}

type animalResponse struct {
	Animal Animal `json:"animal"`
}

type organizationResponse struct {
	Organization Organization `json:"organization"`
}

type typesResponse struct {
	Types []AnimalType `json:"types"`
}

type typeResponse struct {
	Type AnimalType `json:"type"`
}

type breedsResponse struct {
	Breeds []Breed `json:"breeds"`
}
