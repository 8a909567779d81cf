package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SeedData is the immutable baseline dataset loaded at startup. Reset
// restores exactly this data.
type SeedData struct {
	Meta      Meta       `json:"meta" yaml:"meta"`
	Users     []User     `json:"users" yaml:"users"`
	Carts     []Cart     `json:"carts" yaml:"carts"`
	Scenarios []Scenario `json:"scenarios" yaml:"scenarios"`
}

// LoadSeedFile reads a seed fixture from a JSON or YAML file, picked by
// extension.
func LoadSeedFile(path string) (SeedData, error) {
	var seed SeedData
	data, err := os.ReadFile(path)
	if err != nil {
		return seed, fmt.Errorf("read seed file: %w", err)
	}

	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &seed); err != nil {
			return seed, fmt.Errorf("parse YAML seed: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &seed); err != nil {
			return seed, fmt.Errorf("parse JSON seed: %w", err)
		}
	}
	return seed, nil
}

// DefaultSeed returns the built-in fixture used when no seed file is given.
func DefaultSeed() SeedData {
	return SeedData{
		Meta: Meta{
			GeneratedOnUTC:    "2025-11-14T09:00:00Z",
			Currency:          "USD",
			EligibleThreshold: 30.0,
			OutcomeLegend: map[string]string{
				"SUCCESS": "Charge settles on the first attempt",
				"FAIL":    "Charge is declined and the instalment is marked FAILED",
			},
			ScheduleTemplate: []string{"t0", "t0+30d", "t0+60d"},
		},
		Users: []User{
			{
				UserID:              "usr_alice",
				Name:                "Alice Tran",
				Verified:            true,
				PriorSuccessfulTxns: 5,
				HasPaymentMethod:    true,
				DefaultPMLast4:      "4242",
				Timezone:            "America/New_York",
				Locale:              "en-US",
			},
			{
				UserID:              "usr_binh",
				Name:                "Binh Le",
				Verified:            true,
				PriorSuccessfulTxns: 2,
				HasPaymentMethod:    true,
				DefaultPMLast4:      "1881",
				Timezone:            "Asia/Ho_Chi_Minh",
				Locale:              "vi-VN",
			},
			{
				UserID:              "usr_chloe",
				Name:                "Chloe Park",
				Verified:            false,
				PriorSuccessfulTxns: 0,
				HasPaymentMethod:    false,
				Timezone:            "Europe/London",
				Locale:              "en-GB",
			},
		},
		Carts: []Cart{
			{
				CartID:            "cart_alice_1",
				UserID:            "usr_alice",
				TotalAmount:       120.00,
				Currency:          "USD",
				EligibleThreshold: 30.0,
				ItemCount:         3,
				Notes:             "Standard eligible basket",
			},
			{
				CartID:            "cart_alice_2",
				UserID:            "usr_alice",
				TotalAmount:       25.50,
				Currency:          "USD",
				EligibleThreshold: 30.0,
				ItemCount:         1,
				Notes:             "Below threshold",
			},
			{
				CartID:            "cart_binh_1",
				UserID:            "usr_binh",
				TotalAmount:       90.00,
				Currency:          "USD",
				EligibleThreshold: 30.0,
				ItemCount:         2,
			},
			{
				CartID:            "cart_chloe_1",
				UserID:            "usr_chloe",
				TotalAmount:       64.99,
				Currency:          "USD",
				EligibleThreshold: 30.0,
				ItemCount:         1,
				Notes:             "Owner fails verification checks",
			},
		},
		Scenarios: []Scenario{
			{
				ScenarioID:         "scn_happy_path",
				UserID:             "usr_alice",
				CartID:             "cart_alice_1",
				Instalment1Outcome: "SUCCESS",
				Instalment2Outcome: "SUCCESS",
				Instalment3Outcome: "SUCCESS",
				Description:        "All three instalments settle on time",
			},
			{
				ScenarioID:         "scn_fail_then_retry",
				UserID:             "usr_binh",
				CartID:             "cart_binh_1",
				Instalment1Outcome: "SUCCESS",
				Instalment2Outcome: "FAIL",
				Instalment3Outcome: "SUCCESS",
				Description:        "Second instalment fails once, then a retry clears it",
			},
			{
				ScenarioID:         "scn_double_fail",
				UserID:             "usr_binh",
				CartID:             "cart_binh_1",
				Instalment1Outcome: "SUCCESS",
				Instalment2Outcome: "FAIL",
				Instalment3Outcome: "FAIL",
				Description:        "Both remaining instalments are declined",
			},
		},
	}
}
