package testkit

import (
	"fmt"
	"math/rand"

	"fairlens/domain/core"
	"fairlens/domain/dataset"
)

// NewDatasetFromRows builds a dataset snapshot from a raw header and string
// rows, coercing cells the same way the file readers do. Test fixtures use
// this to stay close to real ingestion.
func NewDatasetFromRows(header []string, rows [][]string) *dataset.Dataset {
	columns := make([]core.ColumnName, len(header))
	for i, h := range header {
		columns[i] = core.NormalizeColumnName(h)
	}
	records := make([]dataset.Record, 0, len(rows))
	for _, row := range rows {
		values := make(map[core.ColumnName]core.Value, len(columns))
		for i, col := range columns {
			if i < len(row) {
				values[col] = core.ParseValue(row[i])
			} else {
				values[col] = core.EmptyValue()
			}
		}
		records = append(records, dataset.NewRecord(columns, values))
	}
	return dataset.New(columns, records)
}

// LoanOptions tunes the synthetic loan-application generator.
type LoanOptions struct {
	Records          int
	MaleShare        float64 // fraction of applicants labeled Male
	MaleApprovalRate float64
	FemaleApprovalRate float64
	Seed             int64
	Months           int // spread application dates over this many months
}

// DefaultLoanOptions returns a visibly biased synthetic portfolio
func DefaultLoanOptions() LoanOptions {
	return LoanOptions{
		Records:            100,
		MaleShare:          0.7,
		MaleApprovalRate:   0.9,
		FemaleApprovalRate: 0.6,
		Seed:               42,
		Months:             6,
	}
}

// LoanDataset generates a deterministic synthetic loan-application dataset
// with a gender column, numeric features, an approval outcome, and an
// application date. Same options, same dataset.
func LoanDataset(opts LoanOptions) *dataset.Dataset {
	rng := rand.New(rand.NewSource(opts.Seed))
	header := []string{"applicant_id", "gender", "age", "income", "loan_amount", "application_date", "approved"}

	rows := make([][]string, 0, opts.Records)
	for i := 0; i < opts.Records; i++ {
		male := float64(i) < opts.MaleShare*float64(opts.Records)
		gender := "Female"
		rate := opts.FemaleApprovalRate
		if male {
			gender = "Male"
			rate = opts.MaleApprovalRate
		}
		approved := "0"
		if rng.Float64() < rate {
			approved = "1"
		}
		month := 1 + i*opts.Months/opts.Records
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			gender,
			fmt.Sprintf("%d", 21+rng.Intn(45)),
			fmt.Sprintf("%.0f", 28000+rng.Float64()*90000),
			fmt.Sprintf("%.0f", 5000+rng.Float64()*45000),
			fmt.Sprintf("2025-%02d-%02d", month, 1+rng.Intn(27)),
			approved,
		})
	}
	return NewDatasetFromRows(header, rows)
}

// BiasedLoanDataset generates approvals with exact per-gender rates rather
// than sampled ones, for tests asserting precise metric values.
func BiasedLoanDataset(records int, maleShare, maleRate, femaleRate float64) *dataset.Dataset {
	header := []string{"applicant_id", "gender", "income", "approved"}
	males := int(maleShare * float64(records))

	rows := make([][]string, 0, records)
	for i := 0; i < records; i++ {
		gender := "Female"
		groupIdx := i - males
		groupSize := records - males
		rate := femaleRate
		if i < males {
			gender = "Male"
			groupIdx = i
			groupSize = males
			rate = maleRate
		}
		// First rate*groupSize members of each group approved: exact rates.
		approved := "0"
		if float64(groupIdx) < rate*float64(groupSize) {
			approved = "1"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			gender,
			fmt.Sprintf("%d", 30000+i*50),
			approved,
		})
	}
	return NewDatasetFromRows(header, rows)
}
