package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/iwvelando/house-affordability/internal/affordability"
	"github.com/iwvelando/house-affordability/internal/ledger"
	"github.com/iwvelando/house-affordability/pkg/testutil"
	"gopkg.in/yaml.v3"
)

func sampleSnapshot() ledger.Snapshot {
	l := ledger.New(ledger.WithIDGenerator(testutil.SequentialIDs("id")))
	l.SetSalary("5000")
	car := l.AddEntry()
	l.UpdateAmount(car.ID, "300")
	card := l.AddEntry()
	l.UpdateCategory(card.ID, affordability.CreditCard)
	l.UpdateAmount(card.ID, "200")
	return l.Snapshot()
}

func TestNewDisplay(t *testing.T) {
	d := NewDisplay(sampleSnapshot())

	expected := Display{
		TotalDebt:          "RM500",
		DebtToIncomeRatio:  "10.0% (Moderate Debt)",
		MaxHousePrice:      "RM240,000",
		MonthlyInstallment: "RM1,031.22",
		Deposit:            "RM24,000",
		LoanAmount:         "RM216,000",
	}
	if d != expected {
		t.Errorf("NewDisplay() = %+v, expected %+v", d, expected)
	}
}

func TestNewDisplayPending(t *testing.T) {
	d := NewDisplay(ledger.New().Snapshot())

	if d.DebtToIncomeRatio != "0.0% (Pending Input)" {
		t.Errorf("DebtToIncomeRatio = %q, expected pending label", d.DebtToIncomeRatio)
	}
	if d.MaxHousePrice != "RM0" || d.MonthlyInstallment != "RM0" {
		t.Errorf("pending display = %+v, expected zero amounts", d)
	}
}

func TestPrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := PrettyFormat(&buf, sampleSnapshot()); err != nil {
		t.Fatalf("PrettyFormat() error = %v", err)
	}
	output := buf.String()

	for _, want := range []string{
		"--- Housing Affordability ---",
		"Car Loan",
		"Credit Card",
		"Total Monthly Debt",
		"RM500",
		"10.0% (Moderate Debt)",
		"RM240,000",
		"RM1,031.22",
		"Deposit (10%)",
		"Important Considerations:",
		Considerations[0],
	} {
		if !strings.Contains(output, want) {
			t.Errorf("PrettyFormat missing %q in:\n%s", want, output)
		}
	}
	if strings.Index(output, "Car Loan") > strings.Index(output, "Credit Card") {
		t.Errorf("PrettyFormat did not keep entry order")
	}
}

func TestPrettyFormatWithoutEntries(t *testing.T) {
	var buf bytes.Buffer
	if err := PrettyFormat(&buf, ledger.New().Snapshot()); err != nil {
		t.Fatalf("PrettyFormat() error = %v", err)
	}
	output := buf.String()

	if strings.Contains(output, "Total Monthly Debt") {
		t.Errorf("PrettyFormat showed a debt total without entries")
	}
	if strings.Contains(output, "Deposit") {
		t.Errorf("PrettyFormat showed a deposit for a pending result")
	}
	if !strings.Contains(output, "(not set)") {
		t.Errorf("PrettyFormat missing unset salary marker")
	}
	if !strings.Contains(output, "Pending Input") {
		t.Errorf("PrettyFormat missing pending tier")
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := JSONFormat(&buf, sampleSnapshot()); err != nil {
		t.Fatalf("JSONFormat() error = %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("JSONFormat produced invalid JSON: %v", err)
	}

	if decoded["salary"] != "5000" {
		t.Errorf("salary = %v, expected 5000", decoded["salary"])
	}
	entries, ok := decoded["entries"].([]interface{})
	if !ok || len(entries) != 2 {
		t.Fatalf("entries = %v, expected two entries", decoded["entries"])
	}
	first := entries[0].(map[string]interface{})
	if first["id"] != "id-1" || first["category"] != "Car Loan" || first["amount"] != "300" {
		t.Errorf("first entry = %v", first)
	}
	result := decoded["result"].(map[string]interface{})
	if result["affordabilityTier"] != "Moderate Debt" {
		t.Errorf("affordabilityTier = %v", result["affordabilityTier"])
	}
	if result["maxHousePrice"] != 240000.0 {
		t.Errorf("maxHousePrice = %v", result["maxHousePrice"])
	}
	display := decoded["display"].(map[string]interface{})
	if display["maxHousePrice"] != "RM240,000" {
		t.Errorf("display.maxHousePrice = %v", display["maxHousePrice"])
	}
}

func TestYAMLFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := YAMLFormat(&buf, sampleSnapshot()); err != nil {
		t.Fatalf("YAMLFormat() error = %v", err)
	}

	var decoded map[string]interface{}
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("YAMLFormat produced invalid YAML: %v", err)
	}
	if decoded["salary"] != "5000" {
		t.Errorf("salary = %v, expected 5000", decoded["salary"])
	}
	if _, ok := decoded["display"]; !ok {
		t.Errorf("YAMLFormat missing display block")
	}
	if !strings.Contains(buf.String(), "affordabilityTier: Moderate Debt") {
		t.Errorf("YAMLFormat missing tier:\n%s", buf.String())
	}
}

func TestWriteRejectsUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, "csv", sampleSnapshot()); err == nil {
		t.Error("Write() expected error for csv format")
	}
	if err := Write(&buf, "json", sampleSnapshot()); err != nil {
		t.Errorf("Write() json error = %v", err)
	}
}
