package robotspare

// headOptions maps the CSV head number to the option label shown in the
// form's head dropdown. The six entries are fixed by the order page.
var headOptions = map[string]string{
	"1": "Roll-a-thor head",
	"2": "Peanut crusher head",
	"3": "D.A.V.E head",
	"4": "Andy Roid head",
	"5": "Spanner mate head",
	"6": "Drillbit 2000 head",
}

// headOptionName resolves a head value to its dropdown label. Any value
// outside 1..6 resolves to the "1" label; known reports whether the value
// was valid so the caller can log the substitution instead of hiding it.
func headOptionName(value string) (name string, known bool) {
	if n, ok := headOptions[value]; ok {
		return n, true
	}
	return headOptions["1"], false
}
