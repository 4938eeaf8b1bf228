package simplex

type Money struct {
	amount   int
	currency string
}

func NewMoney(amount int, currency string) Money {
	return Money{amount: amount, currency: currency}
}

type User struct {
	username     string
	emailAddress string
	isEnabled    bool
}

type UserDTO struct {
	username     string
	emailAddress string
	isEnabled    bool
}

type UserDTOSnakeCase struct {
	username      string
	email_address string
	is_enabled    bool
}

type Supplier struct {
	CompanyName string `json:"companyName"`
}

type InfraEntity struct {
	propString string
	propInt    int
}

type DomainEntity struct {
	DefaultProp              int     `json:"defaultProp" simplex:"default:'1'"`
	UntypedProp              any     `json:"untypedProp" simplex:"default:'10.5'"`
	UninitializedUntypedProp any     `json:"uninitializedUntypedProp"`
	UninitializedTypedProp   float64 `json:"uninitializedTypedProp" simplex:"default:'12.5'"`
	propString               string
	propInt                  *int
	PropMoney                *Money `json:"propMoney"`
}

func newDomainEntity(propString string, propInt *int, money *Money) *DomainEntity {
	return &DomainEntity{
		DefaultProp:            1,
		UntypedProp:            10.5,
		UninitializedTypedProp: 12.5,
		propString:             propString,
		propInt:                propInt,
		PropMoney:              money,
	}
}

// ClassWithFields takes its defaults from its constructor.
type ClassWithFields struct {
	BoolProp  bool    `json:"boolProp"`
	ArrayProp []any   `json:"arrayProp"`
	FloatProp float64 `json:"floatProp"`
	UnionType any     `json:"unionType" simplex:"type:'int|string'"`
}

func (*ClassWithFields) ConstructorDefaults() Record {
	return Record{
		{"boolProp", false},
		{"arrayProp", []any{1, 2, 3}},
		{"floatProp", 1.4},
		{"unionType", 2},
	}
}

func newClassWithFields() *ClassWithFields {
	return &ClassWithFields{
		ArrayProp: []any{1, 2, 3},
		FloatProp: 1.4,
		UnionType: 2,
	}
}

type ClassWithProps struct {
	One   string `json:"one" simplex:"default:'1'"`
	Two   string `json:"two" simplex:"default:'2'"`
	Three string `json:"three" simplex:"default:'3'"`
}

type AnotherClassWithProps struct {
	OneOne     string `json:"oneOne" simplex:"default:'1'"`
	TwoTwo     string `json:"twoTwo" simplex:"default:'2'"`
	ThreeThree string `json:"threeThree" simplex:"default:'3'"`
}

type Car interface {
	Wheels() int
}

type Truck interface {
	Payload() int
}

type Alfa147 struct{}

func (Alfa147) Wheels() int { return 4 }

type CarAndTruck struct{}

func (CarAndTruck) Wheels() int  { return 6 }
func (CarAndTruck) Payload() int { return 1000 }

type Garage struct {
	Car Car `json:"car"`
}

type ClassWithIntersection struct {
	IntersectionType any `json:"intersectionType" simplex:"type:'Car&Truck'"`
}

type Address struct {
	City    string `json:"city"`
	Country string `json:"country" simplex:"default:'IT'"`
	ZipCode string `json:"zipCode"`
}

type Customer struct {
	Name        string   `json:"name"`
	HomeAddress Address  `json:"homeAddress"`
	WorkAddress *Address `json:"workAddress"`
}

func intPtr(i int) *int {
	return &i
}
