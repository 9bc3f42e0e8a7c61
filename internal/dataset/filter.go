package dataset

import (
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// MonthAll is the month selector sentinel meaning "no filter".
const MonthAll = 0

// ValidMonth reports whether m is the sentinel or a calendar month.
func ValidMonth(m int) bool {
	return m == MonthAll || (m >= 1 && m <= 12)
}

// FilterMonth returns the subset of rows matching the given month, or the
// table unchanged for the MonthAll sentinel. Pure; the input is not mutated.
func FilterMonth(df dataframe.DataFrame, month int) dataframe.DataFrame {
	if month == MonthAll || !hasColumn(df, colMonth) {
		return df
	}
	return df.Filter(dataframe.F{
		Colname:    colMonth,
		Comparator: series.Eq,
		Comparando: month,
	})
}
