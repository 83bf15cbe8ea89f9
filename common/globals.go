package common

const (
	AccountTypeSavings    = "SAVINGS"
	AccountTypeChecking   = "CHECKING"
	AccountTypeBusiness   = "BUSINESS"
	AccountTypeJoint      = "JOINT"
	AccountTypeInvestment = "INVESTMENT"

	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"
	CurrencyGBP = "GBP"
	CurrencyTRY = "TRY"

	TransactionTypeAccountCreation = "ACCOUNT_CREATION"

	// MinCreditScore is the lowest score a user can have and still be
	// issued a loan.
	MinCreditScore = 600

	// LoanIncomeMultiple caps the loan principal at a multiple of the
	// applicant's monthly income.
	LoanIncomeMultiple = 10
)

var AccountTypes = []string{
	AccountTypeSavings,
	AccountTypeChecking,
	AccountTypeBusiness,
	AccountTypeJoint,
	AccountTypeInvestment,
}

var Currencies = []string{
	CurrencyUSD,
	CurrencyEUR,
	CurrencyGBP,
	CurrencyTRY,
}

func ValidAccountType(accountType string) bool {
	for _, t := range AccountTypes {
		if t == accountType {
			return true
		}
	}
	return false
}

func ValidCurrency(currency string) bool {
	for _, c := range Currencies {
		if c == currency {
			return true
		}
	}
	return false
}
