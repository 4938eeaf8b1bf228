package simplex_test

import (
	"errors"
	"fmt"

	simplex "github.com/SimonDaKappa/go-simplex"
)

type Account struct {
	Owner   string   `json:"owner"`
	Balance int      `json:"balance" simplex:"default:'100'"`
	Active  bool     `json:"active"`
	Tags    []string `json:"tags"`
}

type Profile struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type Setting struct {
	Value any `json:"value" simplex:"type:'int|string|null'"`
}

func ExampleMap() {
	acc, err := simplex.Map[Account](map[string]any{
		"owner":  "ada",
		"active": "yes",
		"tags":   []any{"a", "b"},
	}, nil)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(acc.Owner, acc.Balance, acc.Active, acc.Tags)
	// Output: ada 100 true [a b]
}

func ExampleMap_union() {
	for _, raw := range []string{`{"value": 42}`, `{"value": "forty-two"}`, `{"value": null}`} {
		s, err := simplex.Map[Setting]([]byte(raw), nil)
		if err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Printf("%#v\n", s.Value)
	}
	// Output:
	// 42
	// "forty-two"
	// <nil>
}

func ExampleMap_nullNotAllowed() {
	_, err := simplex.Map[Account](map[string]any{"balance": nil}, nil)

	fmt.Println(errors.Is(err, simplex.ErrNullNotAllowed))

	var nullErr *simplex.NullNotAllowedError
	if errors.As(err, &nullErr) {
		fmt.Println(nullErr.Field, nullErr.Type)
	}
	// Output:
	// true
	// balance int
}

func ExampleHydrate() {
	var p Profile
	err := simplex.Hydrate([]byte(`{"first_name": "Ada", "last_name": "Lovelace", "born": 1815}`), &p, simplex.SnakeToCamel{})
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(p.FirstName, p.LastName)
	// Output: Ada Lovelace
}

func ExampleFromYAML() {
	r, err := simplex.FromYAML([]byte("lastName: Lovelace\nfirstName: Ada\n"))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(r.Keys()...)

	p, err := simplex.Map[Profile](r, nil)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(p.FirstName, p.LastName)
	// Output:
	// lastName firstName
	// Ada Lovelace
}

func ExampleCheck() {
	pair := &simplex.NameConverterPair{
		SourceToTarget: simplex.SnakeToCamel{},
		TargetToSource: simplex.CamelToSnake{},
	}

	verdict, err := simplex.Check(map[string]any{"first_name": "Ada", "age": 36}, Profile{}, pair)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(verdict.OK())
	if violations, ok := verdict.(simplex.Violations); ok {
		for _, v := range violations {
			fmt.Println(v)
		}
	}
	// Output:
	// false
	// Property 'age' missing in class simplex_test.Profile
	// Property 'last_name' missing in class Record
}
