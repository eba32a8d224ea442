package catalog

import (
	"github.com/medrisk-server/internal/domain"
)

// medicationRules returns the built-in per-medication rules, keyed into the
// catalog by lower-cased generic name. Threshold values are conventional
// adult reference bounds; rationale text is shown verbatim in monitoring
// suggestions.
func medicationRules() []domain.MedicationRule {
	return []domain.MedicationRule{
		{
			GenericName: "lisinopril",
			DisplayName: "Lisinopril",
			Classes:     []domain.DrugClass{domain.ACE_INHIBITOR},
			DoseRange:   &domain.DoseRange{MinMgPerDay: 2.5, MaxMgPerDay: 40},
			Monitoring: domain.Monitoring{
				Vitals: []domain.ThresholdRule{
					{Type: "systolic_bp", Rationale: "risk of symptomatic hypotension", LowWarning: ptr(100), LowDanger: ptr(90)},
				},
				Labs: []domain.ThresholdRule{
					{Type: "potassium", Rationale: "ACE inhibitors reduce potassium excretion", HighWarning: ptr(5.0), HighDanger: ptr(5.5)},
					{Type: "creatinine", Rationale: "renal function can decline on ACE inhibitors", HighWarning: ptr(1.5), HighDanger: ptr(2.0)},
				},
			},
			Contraindications: []domain.Contraindication{
				{Condition: "pregnancy", Description: "ACE inhibitors are fetotoxic in the second and third trimester.", Severity: domain.RED},
				{Condition: "angioedema", Description: "Prior angioedema on an ACE inhibitor contraindicates re-exposure.", Severity: domain.RED},
				{Condition: "renal artery stenosis", Description: "Bilateral renal artery stenosis increases the risk of acute kidney injury.", Severity: domain.YELLOW},
			},
			Notes: "Avoid potassium supplements and salt substitutes unless a clinician has advised them.",
		},
		{
			GenericName: "metoprolol",
			DisplayName: "Metoprolol",
			Classes:     []domain.DrugClass{domain.BETA_BLOCKER},
			DoseRange:   &domain.DoseRange{MinMgPerDay: 25, MaxMgPerDay: 400},
			Monitoring: domain.Monitoring{
				Vitals: []domain.ThresholdRule{
					{Type: "heart_rate", Rationale: "beta blockade slows the heart rate", LowWarning: ptr(55), LowDanger: ptr(45)},
					{Type: "systolic_bp", Rationale: "risk of symptomatic hypotension", LowWarning: ptr(100), LowDanger: ptr(90)},
				},
			},
			Contraindications: []domain.Contraindication{
				{Condition: "asthma", Description: "Beta blockers can provoke bronchospasm in reactive airway disease.", Severity: domain.YELLOW},
			},
			Notes: "Do not stop abruptly; taper under supervision to avoid rebound tachycardia.",
		},
		{
			GenericName: "ibuprofen",
			DisplayName: "Ibuprofen",
			Classes:     []domain.DrugClass{domain.NSAID},
			DoseRange:   &domain.DoseRange{MinMgPerDay: 200, MaxMgPerDay: 3200},
			Monitoring: domain.Monitoring{
				Vitals: []domain.ThresholdRule{
					{Type: "systolic_bp", Rationale: "NSAIDs can raise blood pressure", HighWarning: ptr(150), HighDanger: ptr(180)},
				},
				Labs: []domain.ThresholdRule{
					{Type: "creatinine", Rationale: "NSAIDs reduce renal perfusion", HighWarning: ptr(1.5), HighDanger: ptr(2.0)},
				},
			},
			Contraindications: []domain.Contraindication{
				{Condition: "peptic ulcer", Description: "NSAIDs can cause ulcer bleeding and perforation.", Severity: domain.RED},
				{Condition: "chronic kidney disease", Description: "NSAIDs can precipitate acute-on-chronic kidney injury.", Severity: domain.RED},
				{Condition: "heart failure", Description: "NSAIDs promote fluid retention and can worsen heart failure.", Severity: domain.YELLOW},
			},
			Notes: "Take with food. Use the lowest effective dose for the shortest duration.",
		},
		{
			GenericName: "naproxen",
			DisplayName: "Naproxen",
			Classes:     []domain.DrugClass{domain.NSAID},
			DoseRange:   &domain.DoseRange{MinMgPerDay: 220, MaxMgPerDay: 1500},
			Monitoring: domain.Monitoring{
				Vitals: []domain.ThresholdRule{
					{Type: "systolic_bp", Rationale: "NSAIDs can raise blood pressure", HighWarning: ptr(150), HighDanger: ptr(180)},
				},
				Labs: []domain.ThresholdRule{
					{Type: "creatinine", Rationale: "NSAIDs reduce renal perfusion", HighWarning: ptr(1.5), HighDanger: ptr(2.0)},
				},
			},
			Contraindications: []domain.Contraindication{
				{Condition: "peptic ulcer", Description: "NSAIDs can cause ulcer bleeding and perforation.", Severity: domain.RED},
				{Condition: "chronic kidney disease", Description: "NSAIDs can precipitate acute-on-chronic kidney injury.", Severity: domain.RED},
			},
			Notes: "Take with food. Avoid combining with other NSAIDs.",
		},
		{
			GenericName: "aspirin",
			DisplayName: "Aspirin",
			Classes:     []domain.DrugClass{domain.NSAID, domain.ANTIPLATELET},
			DoseRange:   &domain.DoseRange{MinMgPerDay: 75, MaxMgPerDay: 4000},
			Monitoring: domain.Monitoring{
				Labs: []domain.ThresholdRule{
					{Type: "hemoglobin", Rationale: "watch for occult blood loss on antiplatelet therapy", LowWarning: ptr(12), LowDanger: ptr(10)},
				},
			},
			Contraindications: []domain.Contraindication{
				{Condition: "peptic ulcer", Description: "Aspirin increases the risk of ulcer bleeding.", Severity: domain.RED},
				{Condition: "bleeding disorder", Description: "Antiplatelet effect compounds an existing bleeding tendency.", Severity: domain.RED},
			},
		},
		{
			GenericName: "sertraline",
			DisplayName: "Sertraline",
			Classes:     []domain.DrugClass{domain.SSRI},
			DoseRange:   &domain.DoseRange{MinMgPerDay: 25, MaxMgPerDay: 200},
			Monitoring: domain.Monitoring{
				Labs: []domain.ThresholdRule{
					{Type: "sodium", Rationale: "SSRIs can cause hyponatremia, especially in older adults", LowWarning: ptr(135), LowDanger: ptr(130)},
				},
			},
			Contraindications: []domain.Contraindication{
				{Condition: "bleeding disorder", Description: "SSRIs impair platelet aggregation.", Severity: domain.YELLOW},
			},
			Notes: "Full effect can take four to six weeks. Do not stop abruptly.",
		},
		{
			GenericName: "fluoxetine",
			DisplayName: "Fluoxetine",
			Classes:     []domain.DrugClass{domain.SSRI},
			DoseRange:   &domain.DoseRange{MinMgPerDay: 10, MaxMgPerDay: 80},
			Monitoring: domain.Monitoring{
				Labs: []domain.ThresholdRule{
					{Type: "sodium", Rationale: "SSRIs can cause hyponatremia, especially in older adults", LowWarning: ptr(135), LowDanger: ptr(130)},
				},
			},
			Notes: "Long half-life; interactions persist for weeks after stopping.",
		},
		{
			GenericName: "warfarin",
			DisplayName: "Warfarin",
			Classes:     []domain.DrugClass{domain.ANTICOAGULANT},
			DoseRange:   &domain.DoseRange{MinMgPerDay: 1, MaxMgPerDay: 15},
			Monitoring: domain.Monitoring{
				Labs: []domain.ThresholdRule{
					{Type: "inr", Rationale: "narrow therapeutic window; both under- and over-anticoagulation are dangerous", LowWarning: ptr(2.0), HighWarning: ptr(3.5), HighDanger: ptr(4.5)},
					{Type: "hemoglobin", Rationale: "falling hemoglobin can signal occult bleeding", LowWarning: ptr(12), LowDanger: ptr(10)},
				},
			},
			Contraindications: []domain.Contraindication{
				{Condition: "pregnancy", Description: "Warfarin is teratogenic.", Severity: domain.RED},
				{Condition: "bleeding", Description: "Active bleeding contraindicates anticoagulation.", Severity: domain.RED},
			},
			Notes: "Keep vitamin K intake consistent and report any unusual bruising or bleeding.",
		},
		{
			GenericName: "metformin",
			DisplayName: "Metformin",
			Classes:     []domain.DrugClass{domain.BIGUANIDE},
			DoseRange:   &domain.DoseRange{MinMgPerDay: 500, MaxMgPerDay: 2550},
			Monitoring: domain.Monitoring{
				Labs: []domain.ThresholdRule{
					{Type: "creatinine", Rationale: "renal impairment raises lactic acidosis risk", HighWarning: ptr(1.4), HighDanger: ptr(1.7)},
					{Type: "egfr", Rationale: "dose reduction below 45, stop below 30", LowWarning: ptr(45), LowDanger: ptr(30)},
				},
			},
			Contraindications: []domain.Contraindication{
				{Condition: "chronic kidney disease", Description: "Severe renal impairment contraindicates metformin.", Severity: domain.RED},
			},
			Notes: "Hold before iodinated contrast imaging and during acute dehydrating illness.",
		},
		{
			GenericName: "amlodipine",
			DisplayName: "Amlodipine",
			Classes:     []domain.DrugClass{domain.CALCIUM_CHANNEL_BLOCKER},
			DoseRange:   &domain.DoseRange{MinMgPerDay: 2.5, MaxMgPerDay: 10},
			Monitoring: domain.Monitoring{
				Vitals: []domain.ThresholdRule{
					{Type: "systolic_bp", Rationale: "risk of symptomatic hypotension", LowWarning: ptr(100), LowDanger: ptr(90)},
				},
			},
			Contraindications: []domain.Contraindication{
				{Condition: "aortic stenosis", Description: "Vasodilation is poorly tolerated in severe aortic stenosis.", Severity: domain.YELLOW},
			},
			Notes: "Ankle swelling is a common dose-related effect.",
		},
		{
			GenericName: "atorvastatin",
			DisplayName: "Atorvastatin",
			Classes:     []domain.DrugClass{domain.STATIN},
			DoseRange:   &domain.DoseRange{MinMgPerDay: 10, MaxMgPerDay: 80},
			Monitoring: domain.Monitoring{
				Labs: []domain.ThresholdRule{
					{Type: "alt", Rationale: "statins can elevate transaminases", HighWarning: ptr(90), HighDanger: ptr(150)},
				},
			},
			Contraindications: []domain.Contraindication{
				{Condition: "liver disease", Description: "Active liver disease contraindicates statin therapy.", Severity: domain.RED},
				{Condition: "pregnancy", Description: "Statins are contraindicated in pregnancy.", Severity: domain.RED},
			},
			Notes: "Report unexplained muscle pain or weakness.",
		},
		{
			GenericName: "levothyroxine",
			DisplayName: "Levothyroxine",
			Classes:     []domain.DrugClass{domain.THYROID_HORMONE},
			DoseRange:   &domain.DoseRange{MinMgPerDay: 0.025, MaxMgPerDay: 0.3},
			Monitoring: domain.Monitoring{
				Vitals: []domain.ThresholdRule{
					{Type: "heart_rate", Rationale: "over-replacement causes tachycardia", HighWarning: ptr(100), HighDanger: ptr(120)},
				},
				Labs: []domain.ThresholdRule{
					{Type: "tsh", Rationale: "dose titration target", LowWarning: ptr(0.4), HighWarning: ptr(4.5)},
				},
			},
			Notes: "Take on an empty stomach; separate from antacids, calcium, and iron by four hours.",
		},
		{
			GenericName: "omeprazole",
			DisplayName: "Omeprazole",
			Classes:     []domain.DrugClass{domain.PROTON_PUMP_INHIBITOR},
			DoseRange:   &domain.DoseRange{MinMgPerDay: 10, MaxMgPerDay: 40},
			Monitoring: domain.Monitoring{
				Labs: []domain.ThresholdRule{
					{Type: "magnesium", Rationale: "long-term PPI use can cause hypomagnesemia", LowWarning: ptr(1.7), LowDanger: ptr(1.2)},
				},
			},
			Notes: "Review the indication yearly; long-term use has cumulative risks.",
		},
		{
			GenericName: "spironolactone",
			DisplayName: "Spironolactone",
			Classes:     []domain.DrugClass{domain.POTASSIUM_SPARING_DIURETIC},
			DoseRange:   &domain.DoseRange{MinMgPerDay: 25, MaxMgPerDay: 200},
			Monitoring: domain.Monitoring{
				Labs: []domain.ThresholdRule{
					{Type: "potassium", Rationale: "potassium-sparing diuretics cause hyperkalemia", HighWarning: ptr(5.0), HighDanger: ptr(5.5)},
					{Type: "creatinine", Rationale: "renal function affects potassium handling", HighWarning: ptr(1.5), HighDanger: ptr(2.0)},
				},
			},
			Contraindications: []domain.Contraindication{
				{Condition: "hyperkalemia", Description: "Existing hyperkalemia contraindicates potassium-sparing diuretics.", Severity: domain.RED},
				{Condition: "chronic kidney disease", Description: "Reduced clearance magnifies hyperkalemia risk.", Severity: domain.YELLOW},
			},
		},
		{
			GenericName: "tramadol",
			DisplayName: "Tramadol",
			Classes:     []domain.DrugClass{domain.OPIOID},
			DoseRange:   &domain.DoseRange{MinMgPerDay: 50, MaxMgPerDay: 400},
			Monitoring: domain.Monitoring{
				Vitals: []domain.ThresholdRule{
					{Type: "respiratory_rate", Rationale: "opioids depress respiration", LowWarning: ptr(12), LowDanger: ptr(8)},
				},
			},
			Contraindications: []domain.Contraindication{
				{Condition: "seizure disorder", Description: "Tramadol lowers the seizure threshold.", Severity: domain.RED},
			},
			Notes: "Avoid alcohol and other sedating medications.",
		},
		{
			GenericName: "sumatriptan",
			DisplayName: "Sumatriptan",
			Classes:     []domain.DrugClass{domain.TRIPTAN},
			DoseRange:   &domain.DoseRange{MinMgPerDay: 25, MaxMgPerDay: 200},
			Monitoring: domain.Monitoring{
				Vitals: []domain.ThresholdRule{
					{Type: "systolic_bp", Rationale: "triptans cause vasoconstriction", HighWarning: ptr(150), HighDanger: ptr(180)},
				},
			},
			Contraindications: []domain.Contraindication{
				{Condition: "coronary artery disease", Description: "Coronary vasoconstriction can provoke ischemia.", Severity: domain.RED},
			},
			Notes: "Do not exceed two doses in 24 hours.",
		},
	}
}
