package models

// ApartmentType is the kind of dwelling a listing describes.
// It is stored as its string value.
type ApartmentType string

const (
	ApartmentTypeApartment ApartmentType = "apartment"
	ApartmentTypeHouse     ApartmentType = "house"
)

// ApartmentTypes lists every valid ApartmentType.
var ApartmentTypes = []ApartmentType{ApartmentTypeApartment, ApartmentTypeHouse}

// Valid reports whether t is one of the known apartment types.
func (t ApartmentType) Valid() bool {
	for _, known := range ApartmentTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Apartment represents a single apartment listing.
// Every field except ID is supplied at creation; listings are never updated.
type Apartment struct {
	ID             uint          `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	AppartmentType ApartmentType `gorm:"type:varchar(32);not null;column:appartment_type" json:"appartment_type"`
	NumRooms       int           `gorm:"not null;column:num_rooms" json:"num_rooms"`
	FloorArea      float64       `gorm:"not null;column:floor_area" json:"floor_area"`
	Floor          int           `gorm:"not null;column:floor" json:"floor"`
	Improvement    string        `gorm:"type:text;not null;column:improvement" json:"improvement"`
	Address        string        `gorm:"type:text;not null;column:address" json:"address"`
}

// TableName specifies the table name for GORM.
func (Apartment) TableName() string {
	return "appartments"
}

// ApartmentFilter holds optional equality constraints for listing queries.
// A nil field places no constraint; a non-nil field matches exactly,
// including zero values.
type ApartmentFilter struct {
	NumRooms       *int
	FloorArea      *float64
	Floor          *int
	AppartmentType *ApartmentType
}

// Matches reports whether a satisfies every constraint in f.
func (f ApartmentFilter) Matches(a Apartment) bool {
	if f.NumRooms != nil && a.NumRooms != *f.NumRooms {
		return false
	}
	if f.FloorArea != nil && a.FloorArea != *f.FloorArea {
		return false
	}
	if f.Floor != nil && a.Floor != *f.Floor {
		return false
	}
	if f.AppartmentType != nil && a.AppartmentType != *f.AppartmentType {
		return false
	}
	return true
}

// Fields returns the set constraints keyed by column name, for logging.
func (f ApartmentFilter) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if f.NumRooms != nil {
		fields["num_rooms"] = *f.NumRooms
	}
	if f.FloorArea != nil {
		fields["floor_area"] = *f.FloorArea
	}
	if f.Floor != nil {
		fields["floor"] = *f.Floor
	}
	if f.AppartmentType != nil {
		fields["appartment_type"] = string(*f.AppartmentType)
	}
	return fields
}
