package integrations_test

import (
	"fmt"

	"github.com/matzehuels/nomiskit/pkg/integrations"
)

func ExampleEncodeQuery() {
	// Query parameters are emitted in sorted key order
	fmt.Println(integrations.EncodeQuery(map[string]string{
		"sex":       "7",
		"geography": "2092957697",
	}))
	// Output:
	// ?geography=2092957697&sex=7
}

func ExamplePathEscapeList() {
	fmt.Println(integrations.PathEscapeList("1946157281,POSTCODE|SW1A 1AA;486"))
	// Output:
	// 1946157281,POSTCODE%7CSW1A%201AA%3B486
}

func Example_errors() {
	// Standard errors for upstream operations
	fmt.Println("ErrNotFound:", integrations.ErrNotFound)
	fmt.Println("ErrNetwork:", integrations.ErrNetwork)
	// Output:
	// ErrNotFound: resource not found
	// ErrNetwork: network error
}
