package cfg

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml"
)

// OntologyAnnotation is a term of a controlled vocabulary, referenced by
// name, accession number and term source.
type OntologyAnnotation struct {
	Value     string `toml:"value" comment:"Term name"`
	Accession string `toml:"accession" comment:"Term accession number"`
	Ref       string `toml:"ref" comment:"Term source reference, e.g. NCBITaxon or PSO"`
}

// Investigation holds the investigation block of the investigation file.
type Investigation struct {
	Identifier     string `toml:"identifier"`
	Title          string `toml:"title"`
	Description    string `toml:"description"`
	SubmissionDate string `toml:"submission_date" comment:"Date in YYYY-MM-DD format"`
	ReleaseDate    string `toml:"release_date" comment:"Date in YYYY-MM-DD format"`
}

// Study holds the study block of the investigation file.
type Study struct {
	Title          string `toml:"title"`
	Description    string `toml:"description"`
	SubmissionDate string `toml:"submission_date" comment:"Date in YYYY-MM-DD format"`
	ReleaseDate    string `toml:"release_date" comment:"Date in YYYY-MM-DD format"`
}

// Publication describes a publication associated with the investigation or
// the study.
type Publication struct {
	PubMedID   string             `toml:"pubmed_id"`
	DOI        string             `toml:"doi"`
	AuthorList string             `toml:"author_list"`
	Title      string             `toml:"title"`
	Status     OntologyAnnotation `toml:"Status" comment:"Publication status, e.g. published"`
}

// Contact describes a person associated with the investigation or the
// study.
type Contact struct {
	FirstName   string             `toml:"first_name"`
	MidInitials string             `toml:"mid_initials"`
	LastName    string             `toml:"last_name"`
	Email       string             `toml:"email"`
	Phone       string             `toml:"phone"`
	Fax         string             `toml:"fax"`
	Address     string             `toml:"address"`
	Affiliation string             `toml:"affiliation"`
	Roles       OntologyAnnotation `toml:"Roles"`
}

// Factor is an experimental factor of the study.
type Factor struct {
	Name string             `toml:"name"`
	Type OntologyAnnotation `toml:"Type"`
}

// Characteristics describe the studied samples.
type Characteristics struct {
	Organism     OntologyAnnotation `toml:"Organism"`
	Variant      OntologyAnnotation `toml:"Variant"`
	OrganismPart OntologyAnnotation `toml:"OrganismPart"`
}

// Descriptions are the free text descriptions of the study protocols.
type Descriptions struct {
	SampleCollection         string `toml:"sample_collection"`
	Extraction               string `toml:"extraction"`
	Chromatography           string `toml:"chromatography"`
	MassSpectrometry         string `toml:"mass_spectrometry"`
	DataTransformation       string `toml:"data_transformation"`
	MetaboliteIdentification string `toml:"metabolite_identification"`
}

// UserMeta stores the user provided study metadata that can not be
// extracted from mzML files.
type UserMeta struct {
	Investigation            Investigation   `toml:"Investigation"`
	InvestigationPublication Publication     `toml:"InvestigationPublication"`
	InvestigationContacts    []*Contact      `toml:"InvestigationContact"`
	Study                    Study           `toml:"Study"`
	StudyPublication         Publication     `toml:"StudyPublication"`
	StudyContacts            []*Contact      `toml:"StudyContact"`
	Factors                  []*Factor       `toml:"Factor"`
	Characteristics          Characteristics `toml:"Characteristics"`
	Descriptions             Descriptions    `toml:"Description"`
}

// ExampleUserMeta returns an exemplary user metadata cfg struct.
func ExampleUserMeta() *UserMeta {
	return &UserMeta{
		Investigation: Investigation{
			Identifier: "MTBLS0",
			Title:      "Investigation",
		},
		InvestigationPublication: Publication{
			Status: OntologyAnnotation{Ref: "PSO"},
		},
		InvestigationContacts: []*Contact{
			{
				FirstName: "Jane",
				LastName:  "Doe",
				Email:     "jane.doe@example.org",
				Roles: OntologyAnnotation{
					Value: "principal investigator role",
				},
			},
		},
		Study: Study{
			Title: "Study",
		},
		StudyPublication: Publication{
			Status: OntologyAnnotation{Ref: "PSO"},
		},
		StudyContacts: []*Contact{
			{
				FirstName: "Jane",
				LastName:  "Doe",
			},
		},
		Factors: []*Factor{
			{
				Name: "Genotype",
				Type: OntologyAnnotation{Value: "genotype"},
			},
		},
		Characteristics: Characteristics{
			Organism: OntologyAnnotation{
				Value: "Homo sapiens",
				Ref:   "NCBITaxon",
			},
		},
		Descriptions: Descriptions{
			SampleCollection: "Describe how the samples were collected.",
		},
	}
}

// UserMetaFromFile unmarshals a user metadata configuration from a file and
// validates it.
func UserMetaFromFile(path string) (*UserMeta, error) {
	config := UserMeta{}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	err = toml.Unmarshal(content, &config)
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &config, nil
}

// ToFile marshals the UserMeta into toml format and writes it to the given
// filepath.
func (u *UserMeta) ToFile(filepath string, opts ...toFileOpt) error {
	return toFile(u, filepath, opts...)
}

// Validate validates the user metadata.
func (u *UserMeta) Validate() error {
	if err := validateDates(&u.Investigation.SubmissionDate,
		&u.Investigation.ReleaseDate); err != nil {
		return fieldErrorWrap(err, "Investigation")
	}

	if err := validateDates(&u.Study.SubmissionDate,
		&u.Study.ReleaseDate); err != nil {
		return fieldErrorWrap(err, "Study")
	}

	for i, c := range u.InvestigationContacts {
		if err := c.validate(); err != nil {
			return fieldErrorWrap(err,
				"InvestigationContact", fmt.Sprint(i))
		}
	}

	for i, c := range u.StudyContacts {
		if err := c.validate(); err != nil {
			return fieldErrorWrap(err, "StudyContact", fmt.Sprint(i))
		}
	}

	for i, f := range u.Factors {
		if f.Name == "" {
			return newFieldError("name can not be empty",
				"Factor", fmt.Sprint(i))
		}
	}

	return nil
}

func (c *Contact) validate() error {
	if c.LastName == "" {
		return newFieldError("last_name can not be empty")
	}

	return nil
}

func validateDates(dates ...*string) error {
	for _, d := range dates {
		if *d == "" {
			continue
		}

		if _, err := time.Parse("2006-01-02", *d); err != nil {
			return newFieldError(
				fmt.Sprintf("%q is not a date in YYYY-MM-DD format", *d))
		}
	}

	return nil
}
