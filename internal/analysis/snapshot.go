package analysis

import (
	"fmt"

	"gotips/domain/tips"
)

// Options are the presentation knobs of a snapshot.
type Options struct {
	TopN          int
	HistogramBins int
}

// DefaultOptions matches the dashboard defaults.
func DefaultOptions() Options {
	return Options{TopN: 10, HistogramBins: 20}
}

// Metrics are the four headline numbers.
type Metrics struct {
	Count             int    `json:"count"`
	TotalBill         Metric `json:"total_bill"`
	MeanTip           Metric `json:"mean_tip"`
	MeanTipPercentage Metric `json:"mean_tip_percentage"`
}

// Snapshot is every series the dashboard draws for one selection.
type Snapshot struct {
	Selection tips.Selection `json:"selection"`
	Metrics   Metrics        `json:"metrics"`

	SexCounts   []CategoryCount `json:"sex_counts"`
	DayTime     *CountMatrix    `json:"day_time"`
	BusiestDay  string          `json:"busiest_day,omitempty"`
	BusiestTime string          `json:"busiest_time,omitempty"`

	Scatter      []ScatterPoint      `json:"scatter"`
	BillTip      CorrelationResult   `json:"bill_tip_correlation"`
	TipHeatmap   *MeanMatrix         `json:"tip_heatmap"`
	HeatmapMin   Metric              `json:"heatmap_min"`
	HeatmapMax   Metric              `json:"heatmap_max"`
	TipHistogram *Histogram          `json:"tip_histogram"`
	SmokerTip    []GroupMean         `json:"smoker_tip_percentage"`
	SmokerSize   []GroupMean         `json:"smoker_size"`
	SmokerDiff   Metric              `json:"smoker_difference"`
	DayBox       []BoxGroup          `json:"day_box"`
	Outliers     OutlierSet          `json:"outliers"`
	SizeCounts   []CategoryCount     `json:"size_counts"`
	TipBySize    []GroupMean         `json:"tip_by_size"`
	SizeTip      CorrelationResult   `json:"size_tip_correlation"`
	Describe     []ColumnDescription `json:"describe"`
	Top          *Projection         `json:"top"`
	ModeDay      string              `json:"mode_day,omitempty"`
	ModeTime     string              `json:"mode_time,omitempty"`
	MeanBill     Metric              `json:"mean_bill"`
	MeanSize     Metric              `json:"mean_size"`

	Insights Insights `json:"insights"`
}

// Dashboard computes the full battery of aggregates for a view.
func Dashboard(v *View, opts Options) (*Snapshot, error) {
	if opts.TopN <= 0 || opts.HistogramBins <= 0 {
		def := DefaultOptions()
		if opts.TopN <= 0 {
			opts.TopN = def.TopN
		}
		if opts.HistogramBins <= 0 {
			opts.HistogramBins = def.HistogramBins
		}
	}

	s := &Snapshot{
		Selection: v.Selection(),
		Metrics: Metrics{
			Count:             v.Count(),
			TotalBill:         v.SumTotalBill(),
			MeanTip:           v.MeanTip(),
			MeanTipPercentage: v.MeanTipPercentage(),
		},
		MeanBill: v.Mean(tips.ColTotalBill),
		MeanSize: v.Mean(tips.ColSize),
	}

	var err error
	if s.SexCounts, err = v.ValueCounts(tips.ColSex); err != nil {
		return nil, fmt.Errorf("sex counts: %w", err)
	}
	if s.DayTime, err = v.Crosstab(tips.ColDay, tips.ColTime); err != nil {
		return nil, fmt.Errorf("day/time crosstab: %w", err)
	}
	if row, col, _, ok := s.DayTime.Max(); ok {
		s.BusiestDay, s.BusiestTime = row, col
	}

	if s.Outliers, err = v.QuantileOutliers(tips.ColTipPercentage, 0.25, 0.75, 1.5); err != nil {
		return nil, fmt.Errorf("outliers: %w", err)
	}
	s.Scatter = v.ScatterPoints(s.Outliers)
	if s.BillTip, err = v.CorrelationTest(tips.ColTotalBill, tips.ColTip); err != nil {
		return nil, fmt.Errorf("bill/tip correlation: %w", err)
	}
	if s.TipHeatmap, err = v.MeanMatrix(tips.ColDay, tips.ColTime, tips.ColTipPercentage); err != nil {
		return nil, fmt.Errorf("tip heatmap: %w", err)
	}
	s.HeatmapMin, s.HeatmapMax = s.TipHeatmap.Range()

	if s.TipHistogram, err = v.Histogram(tips.ColTipPercentage, opts.HistogramBins, tips.ColSex); err != nil {
		return nil, fmt.Errorf("tip histogram: %w", err)
	}
	if s.SmokerTip, err = v.GroupMean([]tips.Column{tips.ColSmoker}, tips.ColTipPercentage); err != nil {
		return nil, fmt.Errorf("smoker tips: %w", err)
	}
	if s.SmokerSize, err = v.GroupMean([]tips.Column{tips.ColSmoker}, tips.ColSize); err != nil {
		return nil, fmt.Errorf("smoker size: %w", err)
	}
	s.SmokerDiff = SmokerDifference(s.SmokerTip)

	if s.DayBox, err = v.BoxStats(tips.ColTipPercentage, tips.ColDay, tips.ColSex); err != nil {
		return nil, fmt.Errorf("day box: %w", err)
	}
	if s.SizeCounts, err = v.CountsByCategory(tips.ColSize); err != nil {
		return nil, fmt.Errorf("size counts: %w", err)
	}
	if s.TipBySize, err = v.GroupMean([]tips.Column{tips.ColSize}, tips.ColTipPercentage); err != nil {
		return nil, fmt.Errorf("tip by size: %w", err)
	}
	if s.SizeTip, err = v.CorrelationTest(tips.ColSize, tips.ColTipPercentage); err != nil {
		return nil, fmt.Errorf("size/tip correlation: %w", err)
	}

	s.Describe = v.Describe()
	if s.Top, err = v.TopN(tips.ColTipPercentage, opts.TopN, TopColumns); err != nil {
		return nil, fmt.Errorf("top tips: %w", err)
	}
	s.ModeDay, _ = v.Mode(tips.ColDay)
	s.ModeTime, _ = v.Mode(tips.ColTime)

	s.Insights = BuildInsights(s)
	return s, nil
}

// SmokerDifference is mean tip percentage of smokers minus non-smokers,
// Undefined unless both groups have a defined mean.
func SmokerDifference(smokerTip []GroupMean) Metric {
	yes := MeanOf(smokerTip, string(tips.SmokerYes))
	no := MeanOf(smokerTip, string(tips.SmokerNo))
	if !yes.Defined || !no.Defined {
		return Undefined
	}
	return Defined(yes.Value - no.Value)
}
