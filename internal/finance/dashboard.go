package finance

import "fmt"

// DataType tells the presentation layer how to format a chart's values
type DataType string

const (
	DataTypeCurrency   DataType = "currency"
	DataTypePercentage DataType = "percentage"
)

// ChartDefinition declares one dashboard chart
type ChartDefinition struct {
	Title      string
	Fields     []Field
	Labels     []string
	DataType   DataType
	ShowLegend bool
}

// ChartGroup is a titled set of charts
type ChartGroup struct {
	Title  string
	Charts []ChartDefinition
}

// DashboardLayout is the fixed set of charts shown on the dashboard
var DashboardLayout = []ChartGroup{
	{
		Title: "Income & Taxes",
		Charts: []ChartDefinition{
			{Title: "Gross Income Year-to-Date", Fields: []Field{FieldGrossIncomeYtd}, Labels: []string{"Gross income YTD"}, DataType: DataTypeCurrency},
			{Title: "Taxes Paid Year-to-Date", Fields: []Field{FieldTaxesPaidYtd}, Labels: []string{"Taxes paid YTD"}, DataType: DataTypeCurrency},
		},
	},
	{
		Title: "Assets & Cash",
		Charts: []ChartDefinition{
			{Title: "Total cash", Fields: []Field{FieldCash}, Labels: []string{"Cash"}, DataType: DataTypeCurrency},
			{Title: "Total Assets Excluding Cash", Fields: []Field{FieldAssetsExCash}, Labels: []string{"Assets ex cash"}, DataType: DataTypeCurrency},
			{Title: "Total Assets", Fields: []Field{FieldTotalAssets}, Labels: []string{"Assets"}, DataType: DataTypeCurrency},
			{Title: "Total Assets by Type", Fields: []Field{FieldCash, FieldAssetsExCash}, Labels: []string{"Cash", "Assets ex cash"}, DataType: DataTypeCurrency, ShowLegend: true},
		},
	},
	{
		Title: "Debt",
		Charts: []ChartDefinition{
			{Title: "Total Debt", Fields: []Field{FieldDebt}, Labels: []string{"Debt"}, DataType: DataTypeCurrency},
			{Title: "Total Debt / Total Assets", Fields: []Field{FieldDebtToTotalAssets}, Labels: []string{"Debt / assets"}, DataType: DataTypePercentage},
			{Title: "Total Debt / Net Worth", Fields: []Field{FieldDebtToNetWorth}, Labels: []string{"Debt / net worth"}, DataType: DataTypePercentage},
		},
	},
	{
		Title: "Net Worth",
		Charts: []ChartDefinition{
			{Title: "Net Worth", Fields: []Field{FieldNetWorth}, Labels: []string{"Net worth"}, DataType: DataTypeCurrency},
			{Title: "Total Cash, Assets Excluding Cash & Debt", Fields: []Field{FieldCash, FieldAssetsExCash, FieldDebt}, Labels: []string{"Cash", "Assets ex cash", "Debt"}, DataType: DataTypeCurrency, ShowLegend: true},
		},
	},
}

// Chart is a dashboard chart with its data
type Chart struct {
	Title      string      `json:"title"`
	DataType   DataType    `json:"dataType"`
	ShowLegend bool        `json:"showLegend"`
	Window     ChartWindow `json:"window"`
}

// DashboardGroup is a titled set of rendered charts
type DashboardGroup struct {
	Title  string  `json:"title"`
	Charts []Chart `json:"charts"`
}

// Dashboard is everything the dashboard page draws
type Dashboard struct {
	DatasetCurrency string           `json:"datasetCurrency"`
	Groups          []DashboardGroup `json:"groups"`
}

// BuildDashboard windows the series for every chart of DashboardLayout
func BuildDashboard(s *ChartSeries) (Dashboard, error) {
	d := Dashboard{
		DatasetCurrency: s.DatasetCurrency,
		Groups:          make([]DashboardGroup, 0, len(DashboardLayout)),
	}
	for _, group := range DashboardLayout {
		g := DashboardGroup{Title: group.Title, Charts: make([]Chart, 0, len(group.Charts))}
		for _, def := range group.Charts {
			w, err := s.Window(def.Fields, def.Labels)
			if err != nil {
				return Dashboard{}, fmt.Errorf("chart %q: %w", def.Title, err)
			}
			g.Charts = append(g.Charts, Chart{
				Title:      def.Title,
				DataType:   def.DataType,
				ShowLegend: def.ShowLegend,
				Window:     w,
			})
		}
		d.Groups = append(d.Groups, g)
	}
	return d, nil
}
