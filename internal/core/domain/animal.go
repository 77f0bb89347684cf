package domain

import "github.com/shopspring/decimal"

type AnimalStatus string

const (
	AnimalAvailable AnimalStatus = "available"
	AnimalReserved  AnimalStatus = "reserved"
	AnimalSold      AnimalStatus = "sold"
	AnimalBreeding  AnimalStatus = "breeding"
	AnimalDeceased  AnimalStatus = "deceased"
)

// Species is a gestation lookup key.
type Species string

const (
	SpeciesRabbit    Species = "rabbit"
	SpeciesGuineaPig Species = "guinea_pig"
	SpeciesDog       Species = "dog"
	SpeciesCat       Species = "cat"
	SpeciesFowl      Species = "fowl"
)

// Animal is a single head of stock.
type Animal struct {
	RowMeta    `bson:",inline"`
	Name       string          `json:"name" bson:"name" validate:"required"`
	Species    Species         `json:"species" bson:"species" validate:"required,oneof=rabbit guinea_pig dog cat fowl"`
	Breed      string          `json:"breed,omitempty" bson:"breed,omitempty"`
	Gender     string          `json:"gender" bson:"gender" validate:"required,oneof=male female"`
	BirthDate  string          `json:"birth_date,omitempty" bson:"birth_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Status     AnimalStatus    `json:"status" bson:"status" validate:"required,oneof=available reserved sold breeding deceased"`
	Price      decimal.Decimal `json:"price" bson:"price" validate:"gte=0"`
	FacilityID string          `json:"facility_id,omitempty" bson:"facility_id,omitempty"`
	Notes      string          `json:"notes,omitempty" bson:"notes,omitempty"`
}

type BreedingStatus string

const (
	BreedingPlanned   BreedingStatus = "planned"
	BreedingConfirmed BreedingStatus = "confirmed"
	BreedingBorn      BreedingStatus = "born"
	BreedingFailed    BreedingStatus = "failed"
)

// BreedingRecord pairs a dam and sire. Mother and Father are only populated by
// joined selects and are never written.
type BreedingRecord struct {
	RowMeta      `bson:",inline"`
	MotherID     string         `json:"mother_id" bson:"mother_id" validate:"required"`
	FatherID     string         `json:"father_id" bson:"father_id" validate:"required"`
	Species      Species        `json:"species" bson:"species" validate:"required,oneof=rabbit guinea_pig dog cat fowl"`
	BreedingDate string         `json:"breeding_date" bson:"breeding_date" validate:"required,datetime=2006-01-02"`
	ExpectedDate string         `json:"expected_date,omitempty" bson:"expected_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ActualDate   string         `json:"actual_date,omitempty" bson:"actual_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	LitterSize   int            `json:"litter_size,omitempty" bson:"litter_size,omitempty" validate:"gte=0"`
	Status       BreedingStatus `json:"status" bson:"status" validate:"required,oneof=planned confirmed born failed"`
	Notes        string         `json:"notes,omitempty" bson:"notes,omitempty"`

	Mother *Animal `json:"mother,omitempty" bson:"mother,omitempty"`
	Father *Animal `json:"father,omitempty" bson:"father,omitempty"`
}

type HealthRecordType string

const (
	HealthVaccination HealthRecordType = "vaccination"
	HealthTreatment   HealthRecordType = "treatment"
	HealthCheckup     HealthRecordType = "checkup"
)

// HealthRecord is a vaccination, treatment or checkup. An empty NextDueDate
// means nothing is scheduled.
type HealthRecord struct {
	RowMeta        `bson:",inline"`
	AnimalID       string           `json:"animal_id" bson:"animal_id" validate:"required"`
	RecordType     HealthRecordType `json:"record_type" bson:"record_type" validate:"required,oneof=vaccination treatment checkup"`
	Description    string           `json:"description" bson:"description" validate:"required"`
	Date           string           `json:"date" bson:"date" validate:"required,datetime=2006-01-02"`
	NextDueDate    string           `json:"next_due_date,omitempty" bson:"next_due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	VeterinarianID string           `json:"veterinarian_id,omitempty" bson:"veterinarian_id,omitempty"`
	Cost           decimal.Decimal  `json:"cost" bson:"cost" validate:"gte=0"`
	Notes          string           `json:"notes,omitempty" bson:"notes,omitempty"`

	Animal *Animal `json:"animal,omitempty" bson:"animal,omitempty"`
}

// Facility is a barn, hutch block or pasture.
type Facility struct {
	RowMeta  `bson:",inline"`
	Name     string `json:"name" bson:"name" validate:"required"`
	Type     string `json:"type" bson:"type" validate:"required"`
	Capacity int    `json:"capacity" bson:"capacity" validate:"gte=0"`
	Location string `json:"location,omitempty" bson:"location,omitempty"`
	Status   string `json:"status" bson:"status" validate:"required,oneof=active maintenance inactive"`
}

type Veterinarian struct {
	RowMeta        `bson:",inline"`
	FullName       string `json:"full_name" bson:"full_name" validate:"required"`
	Clinic         string `json:"clinic,omitempty" bson:"clinic,omitempty"`
	Phone          string `json:"phone" bson:"phone" validate:"required"`
	Email          string `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
	Specialization string `json:"specialization,omitempty" bson:"specialization,omitempty"`
}
