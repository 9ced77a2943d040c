package shared

// PopularQueries feeds cmd/warmer: airport searches users type most often.
var PopularQueries = []string{
	"new york",
	"london",
	"paris",
	"tokyo",
	"madrid",
	"barcelona",
	"rome",
	"amsterdam",
	"berlin",
	"lisbon",
	"miami",
	"los angeles",
	"dublin",
	"istanbul",
	"vienna",
	"prague",
}
