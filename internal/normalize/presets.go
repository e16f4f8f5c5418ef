package normalize

import "strings"

// Preset couples a bank identifier with a ready-made ColumnMapping so a
// caller need only select a preset by name.
type Preset struct {
	Name    string
	Bank    string
	Mapping ColumnMapping
}

// presets is the fixed catalog of known bank export layouts.
var presets = []Preset{
	{
		Name: "barclays",
		Bank: "Barclays",
		Mapping: ColumnMapping{
			DateColumn:        "Date",
			DescriptionColumn: "Memo",
			AmountColumn:      "Amount",
			DateFormat:        "dd/MM/yyyy",
		},
	},
	{
		Name: "hsbc",
		Bank: "HSBC",
		Mapping: ColumnMapping{
			DateColumn:        "Date",
			DescriptionColumn: "Description",
			AmountColumn:      "Amount",
			DateFormat:        "dd/MM/yyyy",
		},
	},
	{
		Name: "lloyds",
		Bank: "Lloyds",
		Mapping: ColumnMapping{
			DateColumn:        "Transaction Date",
			DescriptionColumn: "Transaction Description",
			IncomeColumn:      "Credit Amount",
			ExpenseColumn:     "Debit Amount",
			DateFormat:        "dd/MM/yyyy",
		},
	},
	{
		Name: "monzo",
		Bank: "Monzo",
		Mapping: ColumnMapping{
			DateColumn:        "Date",
			DescriptionColumn: "Name",
			AmountColumn:      "Amount",
			ReferenceColumn:   "Transaction ID",
			DateFormat:        "dd/MM/yyyy",
		},
	},
}

// Presets returns the preset catalog in stable order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// PresetByName looks up a preset case-insensitively.
func PresetByName(name string) (Preset, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, p := range presets {
		if p.Name == key {
			return p, true
		}
	}
	return Preset{}, false
}
