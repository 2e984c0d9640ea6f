package pipeline

import (
	"adoption-eda/internal/model"
)

const sampleCSV = `year,country,age_group,ai_tool,industry,company_size,adoption_rate,daily_active_users
2021,US,18-24,Copilot,Tech,Large,0.4,120
2021,US,18-24,Copilot,Finance,Small,0.6,80
2022,FR,25-34,ChatGPT,Tech,Medium,0.8,300
`

// exampleDataset is the three-record dataset of the filtering walkthrough.
func exampleDataset() model.Dataset {
	return model.Dataset{
		Source: "test",
		Records: []model.Record{
			{Year: 2021, Country: "US", AgeGroup: "18-24", AITool: "Copilot", Industry: "Tech", CompanySize: "Large", AdoptionRate: 0.4, DailyActiveUsers: 120},
			{Year: 2021, Country: "US", AgeGroup: "18-24", AITool: "Copilot", Industry: "Finance", CompanySize: "Small", AdoptionRate: 0.6, DailyActiveUsers: 80},
			{Year: 2022, Country: "FR", AgeGroup: "25-34", AITool: "ChatGPT", Industry: "Tech", CompanySize: "Medium", AdoptionRate: 0.8, DailyActiveUsers: 300},
		},
	}
}

// wideDataset has every combination of a few filter values.
func wideDataset() model.Dataset {
	ds := model.Dataset{Source: "wide"}
	tools := []string{"ChatGPT", "Copilot", "Gemini"}
	i := 0
	for _, year := range []int{2022, 2023, 2024} {
		for _, country := range []string{"DE", "IN", "US"} {
			for _, age := range []string{"18-24", "25-34", "35-44"} {
				ds.Records = append(ds.Records, model.Record{
					Year:             year,
					Country:          country,
					AgeGroup:         age,
					AITool:           tools[i%len(tools)],
					Industry:         []string{"Tech", "Retail"}[i%2],
					CompanySize:      []string{"Small", "Medium", "Large"}[i%3],
					AdoptionRate:     float64(i%10) / 10,
					DailyActiveUsers: float64(100 + 7*i),
				})
				i++
			}
		}
	}
	return ds
}

func intsPtr(v ...int) *[]int          { return &v }
func stringsPtr(v ...string) *[]string { return &v }

// csvWithMissing has a NaN, an Inf, a blank and an NA cell among its numeric columns.
const csvWithMissing = `year,country,age_group,ai_tool,industry,company_size,adoption_rate,daily_active_users
2021,US,18-24,Copilot,Tech,Large,0.4,120
2021,US,18-24,Copilot,Finance,Small,NaN,80
2022,FR,25-34,ChatGPT,Tech,Medium,0.8,Inf
2022,FR,25-34,ChatGPT,Retail,Large,,200
2023,US,18-24,Gemini,Tech,Small,0.5,NA
2023,US,25-34,Gemini,Retail,Medium,-inf,150
`
