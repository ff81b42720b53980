package models

// Account holds the statement holder details printed in the workbook
// header block. All fields may be empty when the input format carries no
// account information (CSV and spreadsheet uploads).
type Account struct {
	HolderName string
	BankName   string
	Number     string
}
