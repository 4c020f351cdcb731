package db_models

// Activity is a generated candidate. Within a triage session its identity is
// its position in the candidate list.
type Activity struct {
	Name           string `json:"name" bson:"name"`
	Category       string `json:"category" bson:"category"`
	Duration       string `json:"duration" bson:"duration"`
	BestTime       string `json:"bestTime" bson:"bestTime"`
	WhyRecommended string `json:"whyRecommended" bson:"whyRecommended"`
	PracticalInfo  string `json:"practicalInfo" bson:"practicalInfo"`
}
