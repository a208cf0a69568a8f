// Package nutrition serves trimester-keyed dietary guidance. The plans
// are static product content, not medical advice.
package nutrition

import "fmt"

// Plan is the dietary guidance for one trimester.
type Plan struct {
	Trimester        string   `json:"trimester"`
	RecommendedFoods []string `json:"recommended_foods"`
	AvoidFoods       []string `json:"avoid_foods"`
}

type Service struct{}

func NewService() *Service { return &Service{} }

// PlanForMonth maps a pregnancy month to its trimester plan. Months above
// nine fall into the third trimester; zero and negative months are
// rejected.
func (s *Service) PlanForMonth(month int) (Plan, error) {
	switch {
	case month <= 0:
		return Plan{}, fmt.Errorf("pregnancy_month is required and must be a positive number")
	case month <= 3:
		return Plan{
			Trimester: "First Trimester",
			RecommendedFoods: []string{
				"Folic acid rich foods",
				"Fruits",
				"Leafy vegetables",
				"Dairy products",
			},
			AvoidFoods: []string{
				"Junk food",
				"Caffeine",
				"Raw meat",
			},
		}, nil
	case month <= 6:
		return Plan{
			Trimester: "Second Trimester",
			RecommendedFoods: []string{
				"Iron rich foods",
				"Protein rich foods",
				"Whole grains",
				"Vegetables",
			},
			AvoidFoods: []string{
				"Oily food",
				"Processed food",
				"Sugary drinks",
			},
		}, nil
	default:
		return Plan{
			Trimester: "Third Trimester",
			RecommendedFoods: []string{
				"Calcium rich foods",
				"Milk",
				"Nuts",
				"Energy giving foods",
			},
			AvoidFoods: []string{
				"Fried food",
				"High sugar intake",
			},
		}, nil
	}
}
