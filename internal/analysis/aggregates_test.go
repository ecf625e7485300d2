package analysis

import (
	"errors"
	"testing"

	"gotips/domain/core"
	"gotips/domain/tips"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueCounts_SumEqualsCount(t *testing.T) {
	table := embeddedTable(t)
	v := Filter(table, []tips.Day{tips.Fri, tips.Sun}, tips.Times)

	for _, col := range []tips.Column{tips.ColSex, tips.ColSmoker, tips.ColDay, tips.ColTime, tips.ColSize, tips.ColMealType} {
		counts, err := v.ValueCounts(col)
		require.NoError(t, err)
		total := 0
		for _, c := range counts {
			total += c.Count
		}
		assert.Equal(t, v.Count(), total, "column %s", col)
	}
}

func TestValueCounts_OrderAndTies(t *testing.T) {
	table := tips.NewTable([]tips.Record{
		rec(10, 1, tips.Female, tips.SmokerNo, tips.Sun, tips.Dinner, 2),
		rec(10, 1, tips.Female, tips.SmokerNo, tips.Thu, tips.Lunch, 2),
		rec(10, 1, tips.Male, tips.SmokerYes, tips.Sat, tips.Dinner, 3),
		rec(10, 1, tips.Male, tips.SmokerNo, tips.Sat, tips.Dinner, 3),
	})
	v := all(table)

	sex, err := v.ValueCounts(tips.ColSex)
	require.NoError(t, err)
	assert.Equal(t, []CategoryCount{{"Male", 2}, {"Female", 2}}, sex)

	days, err := v.ValueCounts(tips.ColDay)
	require.NoError(t, err)
	assert.Equal(t, []CategoryCount{{"Sat", 2}, {"Thu", 1}, {"Sun", 1}}, days)

	_, err = v.ValueCounts(tips.ColTip)
	assert.True(t, errors.Is(err, core.ErrUnknownColumn))
}

func TestCountsByCategory_SizeAscending(t *testing.T) {
	counts, err := all(embeddedTable(t)).CountsByCategory(tips.ColSize)
	require.NoError(t, err)
	assert.Equal(t, []CategoryCount{{"1", 4}, {"2", 156}, {"3", 38}, {"4", 37}, {"5", 5}, {"6", 4}}, counts)
}

func TestCrosstab_DayTime(t *testing.T) {
	v := all(embeddedTable(t))

	m, err := v.Crosstab(tips.ColDay, tips.ColTime)
	require.NoError(t, err)
	assert.Equal(t, []string{"Thu", "Fri", "Sat", "Sun"}, m.Rows)
	assert.Equal(t, []string{"Lunch", "Dinner"}, m.Cols)
	assert.Equal(t, v.Count(), m.Total())
	assert.Equal(t, 61, m.Get("Thu", "Lunch"))
	assert.Equal(t, 1, m.Get("Thu", "Dinner"))
	assert.Equal(t, 0, m.Get("Sat", "Lunch"))

	row, col, count, ok := m.Max()
	require.True(t, ok)
	assert.Equal(t, "Sat", row)
	assert.Equal(t, "Dinner", col)
	assert.Equal(t, 87, count)

	sub, err := Filter(embeddedTable(t), []tips.Day{tips.Sat}, tips.Times).Crosstab(tips.ColDay, tips.ColTime)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sat"}, sub.Rows)
	assert.Equal(t, []string{"Dinner"}, sub.Cols)
}

func TestCorrelation_SymmetricAndBounded(t *testing.T) {
	table := embeddedTable(t)
	views := []*View{
		all(table),
		Filter(table, []tips.Day{tips.Thu}, tips.Times),
		Filter(table, tips.Days, []tips.MealTime{tips.Lunch}),
	}
	pairs := [][2]tips.Column{
		{tips.ColTotalBill, tips.ColTip},
		{tips.ColSize, tips.ColTipPercentage},
		{tips.ColTip, tips.ColDayOrder},
	}

	for _, v := range views {
		for _, p := range pairs {
			ab, err := v.Correlation(p[0], p[1])
			require.NoError(t, err)
			ba, err := v.Correlation(p[1], p[0])
			require.NoError(t, err)
			assert.Equal(t, ab, ba)
			if ab.Defined {
				assert.GreaterOrEqual(t, ab.Value, -1.0)
				assert.LessOrEqual(t, ab.Value, 1.0)
			}
		}
	}

	r, err := all(table).Correlation(tips.ColTotalBill, tips.ColTip)
	require.NoError(t, err)
	assert.InDelta(t, 0.675734, r.Value, 1e-6)
	assert.Equal(t, "moderate positive", Strength(r))
}

func TestCorrelation_Degenerate(t *testing.T) {
	one := tips.NewTable([]tips.Record{rec(10, 1, tips.Male, tips.SmokerNo, tips.Thu, tips.Lunch, 2)})
	r, err := all(one).Correlation(tips.ColTotalBill, tips.ColTip)
	require.NoError(t, err)
	assert.False(t, r.Defined)

	flat := tips.NewTable([]tips.Record{
		rec(10, 2, tips.Male, tips.SmokerNo, tips.Thu, tips.Lunch, 2),
		rec(20, 2, tips.Male, tips.SmokerNo, tips.Thu, tips.Lunch, 2),
		rec(30, 2, tips.Male, tips.SmokerNo, tips.Thu, tips.Lunch, 2),
	})
	r, err = all(flat).Correlation(tips.ColTotalBill, tips.ColTip)
	require.NoError(t, err)
	assert.False(t, r.Defined)

	_, err = all(flat).Correlation(tips.ColSex, tips.ColTip)
	assert.True(t, errors.Is(err, core.ErrUnknownColumn))
}

func TestCorrelationTest_PValue(t *testing.T) {
	linear := tips.NewTable([]tips.Record{
		rec(10, 1, tips.Male, tips.SmokerNo, tips.Thu, tips.Lunch, 2),
		rec(20, 2, tips.Male, tips.SmokerNo, tips.Thu, tips.Lunch, 2),
		rec(30, 3, tips.Male, tips.SmokerNo, tips.Thu, tips.Lunch, 2),
	})
	res, err := all(linear).CorrelationTest(tips.ColTotalBill, tips.ColTip)
	require.NoError(t, err)
	assert.Equal(t, 3, res.N)
	assert.InDelta(t, 1.0, res.R.Value, 1e-12)
	require.True(t, res.PValue.Defined)
	assert.InDelta(t, 0.0, res.PValue.Value, 1e-6)

	full, err := all(embeddedTable(t)).CorrelationTest(tips.ColTotalBill, tips.ColTip)
	require.NoError(t, err)
	assert.Equal(t, 244, full.N)
	assert.Less(t, full.PValue.Value, 1e-10)

	two := tips.NewTable(linear.Records()[:2])
	res, err = all(two).CorrelationTest(tips.ColTotalBill, tips.ColTip)
	require.NoError(t, err)
	assert.True(t, res.R.Defined)
	assert.False(t, res.PValue.Defined)
}

func TestQuantileOutliers(t *testing.T) {
	t.Run("identical values give no outliers", func(t *testing.T) {
		var rows []tips.Record
		for i := 0; i < 6; i++ {
			rows = append(rows, rec(20, 3, tips.Male, tips.SmokerNo, tips.Sat, tips.Dinner, 2))
		}
		set, err := all(tips.NewTable(rows)).QuantileOutliers(tips.ColTipPercentage, 0.25, 0.75, 1.5)
		require.NoError(t, err)
		assert.True(t, set.Defined)
		assert.Equal(t, 0, set.Len())
		assert.Equal(t, 0.0, set.IQR)
	})

	t.Run("three rows are undefined", func(t *testing.T) {
		table := tips.NewTable([]tips.Record{
			rec(10, 1, tips.Male, tips.SmokerNo, tips.Thu, tips.Lunch, 2),
			rec(20, 9, tips.Male, tips.SmokerNo, tips.Thu, tips.Lunch, 2),
			rec(30, 3, tips.Male, tips.SmokerNo, tips.Thu, tips.Lunch, 2),
		})
		set, err := all(table).QuantileOutliers(tips.ColTipPercentage, 0.25, 0.75, 1.5)
		require.NoError(t, err)
		assert.False(t, set.Defined)
		assert.Empty(t, set.RowIDs)
	})

	t.Run("flags extreme rows", func(t *testing.T) {
		table := tips.NewTable([]tips.Record{
			rec(10, 1, tips.Male, tips.SmokerNo, tips.Thu, tips.Lunch, 1),
			rec(11, 1, tips.Male, tips.SmokerNo, tips.Thu, tips.Lunch, 1),
			rec(12, 1, tips.Male, tips.SmokerNo, tips.Thu, tips.Lunch, 1),
			rec(13, 1, tips.Male, tips.SmokerNo, tips.Thu, tips.Lunch, 1),
			rec(14, 1, tips.Male, tips.SmokerNo, tips.Thu, tips.Lunch, 1),
			rec(100, 1, tips.Male, tips.SmokerNo, tips.Thu, tips.Lunch, 1),
		})
		set, err := all(table).QuantileOutliers(tips.ColTotalBill, 0.25, 0.75, 1.5)
		require.NoError(t, err)
		assert.InDelta(t, 11.25, set.Q1, 1e-12)
		assert.InDelta(t, 13.75, set.Q3, 1e-12)
		assert.Equal(t, []int{5}, set.RowIDs)
		assert.True(t, set.Contains(5))
		assert.False(t, set.Contains(0))
	})

	t.Run("embedded dataset", func(t *testing.T) {
		set, err := all(embeddedTable(t)).QuantileOutliers(tips.ColTipPercentage, 0.25, 0.75, 1.5)
		require.NoError(t, err)
		assert.InDelta(t, 12.912736, set.Q1, 1e-6)
		assert.InDelta(t, 19.147549, set.Q3, 1e-6)
		assert.Equal(t, 4, set.Len())
	})
}

func TestQuantile_LinearInterpolation(t *testing.T) {
	table := tips.NewTable([]tips.Record{
		rec(1, 0, tips.Male, tips.SmokerNo, tips.Thu, tips.Lunch, 1),
		rec(2, 0, tips.Male, tips.SmokerNo, tips.Thu, tips.Lunch, 1),
		rec(3, 0, tips.Male, tips.SmokerNo, tips.Thu, tips.Lunch, 1),
		rec(4, 0, tips.Male, tips.SmokerNo, tips.Thu, tips.Lunch, 1),
	})
	v := all(table)

	assert.Equal(t, 1.75, v.Quantile(tips.ColTotalBill, 0.25).Value)
	assert.Equal(t, 2.5, v.Quantile(tips.ColTotalBill, 0.5).Value)
	assert.Equal(t, 4.0, v.Quantile(tips.ColTotalBill, 1).Value)
	assert.False(t, v.Quantile(tips.ColTotalBill, 1.5).Defined)
}

func TestTopN_StableDescending(t *testing.T) {
	table := tips.NewTable([]tips.Record{
		rec(10, 2, tips.Male, tips.SmokerNo, tips.Thu, tips.Lunch, 2),
		rec(10, 1, tips.Female, tips.SmokerNo, tips.Thu, tips.Lunch, 2),
		rec(0, 1, tips.Male, tips.SmokerNo, tips.Fri, tips.Dinner, 2),
		rec(20, 4, tips.Female, tips.SmokerYes, tips.Sat, tips.Dinner, 3),
	})
	v := all(table)

	top, err := v.TopN(tips.ColTipPercentage, 10, []tips.Column{tips.ColTotalBill, tips.ColTipPercentage})
	require.NoError(t, err)
	ids := make([]int, 0, len(top.Rows))
	for _, r := range top.Rows {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []int{0, 3, 1, 2}, ids)
	assert.Nil(t, top.Rows[3].Values[1])
	assert.Equal(t, 20.0, top.Rows[0].Values[1])

	top, err = v.TopN(tips.ColTipPercentage, 2, nil)
	require.NoError(t, err)
	require.Len(t, top.Rows, 2)
	assert.Equal(t, tips.AllColumns, top.Columns)

	_, err = v.TopN(tips.ColDay, 2, nil)
	assert.True(t, errors.Is(err, core.ErrUnknownColumn))
}

func TestTopN_EmbeddedDataset(t *testing.T) {
	top, err := all(embeddedTable(t)).TopN(tips.ColTipPercentage, 10, TopColumns)
	require.NoError(t, err)
	require.Len(t, top.Rows, 10)
	assert.Equal(t, 172, top.Rows[0].ID)
	assert.Equal(t, 178, top.Rows[1].ID)
	assert.InDelta(t, 71.034483, top.Rows[0].Values[2], 1e-6)
}

func TestGroupMean_Smoker(t *testing.T) {
	v := all(embeddedTable(t))

	groups, err := v.GroupMean([]tips.Column{tips.ColSmoker}, tips.ColTipPercentage)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, []string{"Yes"}, groups[0].Key)
	assert.Equal(t, 93, groups[0].Count)
	assert.InDelta(t, 16.319604, groups[0].Mean.Value, 1e-6)
	assert.InDelta(t, 15.932846, MeanOf(groups, "No").Value, 1e-6)

	diff := SmokerDifference(groups)
	assert.InDelta(t, 0.386758, diff.Value, 1e-6)

	smokers := tips.NewTable([]tips.Record{
		rec(10, 2, tips.Male, tips.SmokerYes, tips.Sat, tips.Dinner, 2),
		rec(20, 3, tips.Female, tips.SmokerYes, tips.Sat, tips.Dinner, 2),
	})
	onlySmokers, err := all(smokers).GroupMean([]tips.Column{tips.ColSmoker}, tips.ColTipPercentage)
	require.NoError(t, err)
	require.Len(t, onlySmokers, 1)
	assert.False(t, MeanOf(onlySmokers, "No").Defined)
	assert.False(t, SmokerDifference(onlySmokers).Defined)
}

func TestMeanMatrix_Range(t *testing.T) {
	table := tips.NewTable([]tips.Record{
		rec(10, 1, tips.Male, tips.SmokerNo, tips.Thu, tips.Lunch, 2),
		rec(10, 3, tips.Male, tips.SmokerNo, tips.Thu, tips.Lunch, 2),
		rec(10, 2, tips.Male, tips.SmokerNo, tips.Sat, tips.Dinner, 2),
	})

	m, err := all(table).MeanMatrix(tips.ColDay, tips.ColTime, tips.ColTipPercentage)
	require.NoError(t, err)
	assert.Equal(t, []string{"Thu", "Sat"}, m.Rows)
	assert.Equal(t, []string{"Lunch", "Dinner"}, m.Cols)
	assert.InDelta(t, 20.0, m.Cells[0][0].Value, 1e-9)
	assert.False(t, m.Cells[0][1].Defined)
	assert.False(t, m.Cells[1][0].Defined)

	lo, hi := m.Range()
	assert.InDelta(t, 20.0, lo.Value, 1e-9)
	assert.InDelta(t, 20.0, hi.Value, 1e-9)

	empty, err := Filter(table, nil, nil).MeanMatrix(tips.ColDay, tips.ColTime, tips.ColTipPercentage)
	require.NoError(t, err)
	lo, hi = empty.Range()
	assert.False(t, lo.Defined)
	assert.False(t, hi.Defined)
}

func TestHistogram(t *testing.T) {
	v := all(embeddedTable(t))

	h, err := v.Histogram(tips.ColTipPercentage, 20, tips.ColSex)
	require.NoError(t, err)
	require.Len(t, h.Edges, 21)
	require.Len(t, h.Series, 2)
	assert.Equal(t, "Male", h.Series[0].Category)

	total := 0
	for _, s := range h.Series {
		require.Len(t, s.Counts, 20)
		for _, c := range s.Counts {
			total += c
		}
	}
	assert.Equal(t, v.Count(), total)

	flat := tips.NewTable([]tips.Record{
		rec(10, 1, tips.Male, tips.SmokerNo, tips.Thu, tips.Lunch, 2),
		rec(10, 1, tips.Male, tips.SmokerNo, tips.Thu, tips.Lunch, 2),
	})
	h, err = all(flat).Histogram(tips.ColTotalBill, 2, "")
	require.NoError(t, err)
	assert.Equal(t, []float64{9.5, 10, 10.5}, h.Edges)
	assert.Equal(t, []HistogramSeries{{Category: "all", Counts: []int{0, 2}}}, h.Series)

	h, err = Filter(flat, nil, nil).Histogram(tips.ColTotalBill, 5, "")
	require.NoError(t, err)
	assert.Empty(t, h.Edges)
	assert.Empty(t, h.Series)
}

func TestHistogram_EdgesAndHue(t *testing.T) {
	table := tips.NewTable([]tips.Record{
		rec(10, 1, tips.Male, tips.SmokerNo, tips.Thu, tips.Lunch, 2),
		rec(20, 2, tips.Male, tips.SmokerNo, tips.Sun, tips.Dinner, 2),
		rec(30, 3, tips.Female, tips.SmokerNo, tips.Thu, tips.Lunch, 2),
	})

	h, err := all(table).Histogram(tips.ColTotalBill, 2, "")
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20, 30}, h.Edges)
	// a value on an inner edge opens the next bin; the maximum stays in the last one
	assert.Equal(t, []HistogramSeries{{Category: "all", Counts: []int{1, 2}}}, h.Series)

	h, err = all(table).Histogram(tips.ColTotalBill, 2, tips.ColDay)
	require.NoError(t, err)
	assert.Equal(t, []HistogramSeries{
		{Category: "Thu", Counts: []int{1, 1}},
		{Category: "Sun", Counts: []int{0, 1}},
	}, h.Series)
}

func TestInvalidArguments(t *testing.T) {
	v := all(embeddedTable(t))

	_, err := v.Histogram(tips.ColTip, 0, "")
	assert.True(t, errors.Is(err, core.ErrInvalidArgument))

	_, err = v.QuantileOutliers(tips.ColTip, 0.75, 0.25, 1.5)
	assert.True(t, errors.Is(err, core.ErrInvalidArgument))

	_, err = v.QuantileOutliers(tips.ColTip, 0.25, 0.75, -1)
	assert.True(t, errors.Is(err, core.ErrInvalidArgument))
	assert.True(t, core.IsInvalidInput(err))
}

func TestBoxStats(t *testing.T) {
	table := tips.NewTable([]tips.Record{
		rec(10, 1, tips.Male, tips.SmokerNo, tips.Thu, tips.Lunch, 1),
		rec(11, 1, tips.Male, tips.SmokerNo, tips.Thu, tips.Lunch, 1),
		rec(12, 1, tips.Male, tips.SmokerNo, tips.Thu, tips.Lunch, 1),
		rec(13, 1, tips.Male, tips.SmokerNo, tips.Thu, tips.Lunch, 1),
		rec(14, 1, tips.Male, tips.SmokerNo, tips.Thu, tips.Lunch, 1),
		rec(100, 1, tips.Male, tips.SmokerNo, tips.Thu, tips.Lunch, 1),
		rec(30, 1, tips.Female, tips.SmokerNo, tips.Sun, tips.Dinner, 1),
	})

	boxes, err := all(table).BoxStats(tips.ColTotalBill, tips.ColDay, "")
	require.NoError(t, err)
	require.Len(t, boxes, 2)

	thu := boxes[0]
	assert.Equal(t, "Thu", thu.X)
	assert.Equal(t, 6, thu.Count)
	assert.InDelta(t, 12.5, thu.Median, 1e-12)
	assert.Equal(t, 10.0, thu.LowerFence)
	assert.Equal(t, 14.0, thu.UpperFence)
	assert.Equal(t, []float64{100}, thu.Fliers)

	sun := boxes[1]
	assert.Equal(t, "Sun", sun.X)
	assert.Equal(t, 30.0, sun.Median)
	assert.Empty(t, sun.Fliers)

	withHue, err := all(embeddedTable(t)).BoxStats(tips.ColTipPercentage, tips.ColDay, tips.ColSex)
	require.NoError(t, err)
	require.Len(t, withHue, 8)
	assert.Equal(t, "Thu", withHue[0].X)
	assert.Equal(t, "Male", withHue[0].Hue)
}

func TestDescribe(t *testing.T) {
	desc := all(embeddedTable(t)).Describe()
	require.Len(t, desc, 4)
	assert.Equal(t, "total_bill", desc[0].Column)
	assert.Equal(t, 244, desc[0].Count)
	assert.InDelta(t, 4827.77/244, desc[0].Mean.Value, 1e-9)
	assert.Equal(t, 3.07, desc[0].Min.Value)
	assert.Equal(t, 50.81, desc[0].Max.Value)
	assert.Equal(t, 1.0, desc[1].Min.Value)
	assert.Equal(t, 10.0, desc[1].Max.Value)

	one := tips.NewTable([]tips.Record{rec(10, 1, tips.Male, tips.SmokerNo, tips.Thu, tips.Lunch, 2)})
	single := all(one).Describe()
	assert.True(t, single[0].Mean.Defined)
	assert.False(t, single[0].Std.Defined)

	for _, d := range Filter(one, nil, nil).Describe() {
		assert.Equal(t, 0, d.Count)
		assert.False(t, d.Mean.Defined)
		assert.False(t, d.Max.Defined)
	}
}
