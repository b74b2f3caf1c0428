package entity

// Progress is a current/goal pair
type Progress struct {
	Current int `json:"current" toml:"current"`
	Goal    int `json:"goal" toml:"goal"`
}

// BloodPressure is a single systolic/diastolic reading
type BloodPressure struct {
	Systolic  int `json:"systolic" toml:"systolic"`
	Diastolic int `json:"diastolic" toml:"diastolic"`
}

// HeartRatePoint is one sample of the heart-rate trend
type HeartRatePoint struct {
	Time  string `json:"time" toml:"time"`
	Value int    `json:"value" toml:"value"`
}

// BloodPressurePoint is one sample of the blood-pressure trend
type BloodPressurePoint struct {
	Time      string `json:"time" toml:"time"`
	Systolic  int    `json:"systolic" toml:"systolic"`
	Diastolic int    `json:"diastolic" toml:"diastolic"`
}

// SmartwatchTrends holds bounded time series
type SmartwatchTrends struct {
	HeartRate     []HeartRatePoint     `json:"heartRate" toml:"heart_rate"`
	BloodPressure []BloodPressurePoint `json:"bloodPressure" toml:"blood_pressure"`
}

// SmartwatchData is the current wearable snapshot. A sync replaces it wholesale.
type SmartwatchData struct {
	HeartRate     int              `json:"heartRate" toml:"heart_rate"`
	SpO2          int              `json:"spO2" toml:"spo2"`
	StressLevel   int              `json:"stressLevel" toml:"stress_level"`
	DailySteps    Progress         `json:"dailySteps" toml:"daily_steps"`
	WaterIntake   Progress         `json:"waterIntake" toml:"water_intake"`
	BloodPressure BloodPressure    `json:"bloodPressure" toml:"blood_pressure"`
	Trends        SmartwatchTrends `json:"trends" toml:"trends"`
}

// Clone returns a deep copy of d
func (d *SmartwatchData) Clone() *SmartwatchData {
	if d == nil {
		return nil
	}
	c := *d
	c.Trends.HeartRate = append([]HeartRatePoint(nil), d.Trends.HeartRate...)
	c.Trends.BloodPressure = append([]BloodPressurePoint(nil), d.Trends.BloodPressure...)
	return &c
}

// IndicatesFatigue applies the fatigue rule: stress above 4 or heart rate above 80
func (d *SmartwatchData) IndicatesFatigue() bool {
	return d != nil && (d.StressLevel > 4 || d.HeartRate > 80)
}
