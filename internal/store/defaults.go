package store

import "fjacquet/stmt-sorter/internal/models"

// DefaultRulesFileName is the rules file searched for when no explicit path
// is configured.
const DefaultRulesFileName = "rules.yaml"

// DefaultRules returns the built-in category rule table for SBI statements.
// Rules are evaluated in order and the first matching pattern wins, so the
// specific rules sit above the generic ones they overlap with.
func DefaultRules() []models.CategoryRule {
	return []models.CategoryRule{
		// Deposit categories.
		{Name: "Salary", Patterns: []string{
			`(?i)salary`, `(?i)SAL\s*TRF`, `(?i)NEFT.*SAL`, `(?i)SAL\s*FOR`,
		}},
		{Name: "DEP TFR  HRMS Mobile", Patterns: []string{`(?i)HRMS\s*Mobile`}},
		{Name: "DEP TFR  HRMS Labour", Patterns: []string{`(?i)HRMS\s*Labour`}},
		{Name: "DEP TFR  HRMS Cleansing", Patterns: []string{`(?i)HRMS\s*Cleansing`}},
		{Name: "DEP TFR  HRMS Briefcase", Patterns: []string{`(?i)HRMS\s*Briefcase`}},
		{Name: "DEP TFR  HRMS Furniture", Patterns: []string{`(?i)HRMS\s*Furniture`}},
		{Name: "DEP TFR  HRMS  Utility", Patterns: []string{`(?i)HRMS.*Utility`}},
		{Name: "DEP TFR  HRMS Pest", Patterns: []string{`(?i)HRMS.*Pest`}},
		{Name: "DEP TFR  HRMS", Patterns: []string{
			// Bare HRMS, not followed by another word.
			`(?i)HRMS\s*(?:[^\w\s]|$)`,
			`(?i)DEP\s*TFR.*PF\s*No.*HRMS$`,
			`(?i)PF\s*No.*\d+\s*HRMS$`,
		}},
		{Name: "DEP BANKS PERFORMANCE PLI", Patterns: []string{
			`(?i)BANKS?\s*PERFORMANCE\s*PLI`, `(?i)PERFORMANCE\s*PLI`,
		}},
		{Name: "CDS BASED PLI PAID FOR THE FY", Patterns: []string{
			`(?i)CDS\s*BASED\s*PLI`, `(?i)PLI\s*PAID`,
		}},
		{Name: "CEMTEX DEP INTER CIRCLE SPORTS", Patterns: []string{
			`(?i)CEMTEX.*DEP`, `(?i)INTER\s*CIRCLE\s*SPORTS`, `(?i)HALTING\s*ALLOWANCE`,
		}},

		// Withdrawal categories.
		{Name: "Bank INTEREST", Patterns: []string{
			`(?i)TO\s*INTEREST`, `(?i)INTEREST\s*(?:DR|DEBIT)?$`, `(?i)INT\s*(?:CHARGE|DR)`,
		}},
		{Name: "DIRECT DR", Patterns: []string{
			`(?i)DIRECT\s*DR`, `(?i)SI\s*DR`, `(?i)ECS\s*DR`, `(?i)NACH\s*DR`, `(?i)OFFICER\s*LEVY`,
		}},
		{Name: "Transfer to own A/c", Patterns: []string{
			`(?i)TRF\s*TO\s*(?:OWN|SELF)`, `(?i)SELF\s*TRF`, `(?i)OWN\s*A/?C`, `(?i)INB\s*MBS`,
		}},
		{Name: "WDL TFR", Patterns: []string{
			`(?i)WDL\s*TFR`, `(?i)NBT\s*TFR`, `(?i)WEL\s*TFR`,
		}},
		{Name: "UPI Payment", Patterns: []string{
			`(?i)UPI[/-]`, `(?i)UPI\s*(?:DR|DEBIT)`,
		}},
		{Name: "NEFT/RTGS", Patterns: []string{
			`(?i)NEFT`, `(?i)RTGS`, `(?i)IMPS`,
		}},
		{Name: "ATM Withdrawal", Patterns: []string{
			`(?i)ATM`, `(?i)CASH\s*WDL`,
		}},
	}
}
