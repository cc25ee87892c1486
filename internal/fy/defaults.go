package fy

import "github.com/gridreg/trueup-cli/internal/heuristics"

// Defaults returns the FY 2023-24 dataset. Figures come from the
// truing-up order: audited accounts for claims, MYT order values for
// targets, and the Commission's adopted physical parameters.
func Defaults() *Scenario {
	return &Scenario{
		Year:         "2023-24",
		Generation:   generationDefaults(),
		Transmission: transmissionDefaults(),
		Distribution: distributionDefaults(),
	}
}

func generationDefaults() GenerationInputs {
	return GenerationInputs{
		Fuel: heuristics.FuelInputs{
			LubeOil:              0.34,
			TotalClaimedFuelCost: 0.34,
		},
		OMInflation: heuristics.OMInflationInputs{
			CPIOld: 397.20,
			CPINew: 405.20,
			WPIOld: 151.40,
			WPINew: 153.10,
		},
		OMNorm: heuristics.OMNormInputs{
			BaseYearOM:           156.16,
			Inflation2022_23:     7.06,
			Inflation2023_24:     3.41,
			ClaimedExisting:      185.0,
			NewStationsAllowable: 5.11,
		},
		OMApportion: heuristics.OMApportionInputs{
			ActualEmployee: 220.12,
			ActualAG:       48.32,
			ActualRM:       22.89,
		},
		PayRevision: heuristics.EmployeePayRevisionInputs{
			EmployeeCostActual: 220.12,
		},
		ROE: heuristics.ROEInputs{
			EquityCapital: 831.27,
			ROERate:       0.14,
			ClaimedROE:    116.38,
		},
		Depreciation:     sharedDepreciationDefaults(),
		IFCLongTermLoans: sharedIFCLTLDefaults(),
		IFCWorkingCapital: heuristics.IFCWorkingCapitalInputs{
			ApprovedOMExpenses: 186.16,
			OpeningGFAExclLand: 5453.56,
			SBIEBLRRate:        9.15,
			ClaimedWCInterest:  9.21,
		},
		IFCGPF: heuristics.IFCGPFInputs{
			OpeningGPFBalanceCompany: 3000.09,
			ClosingGPFBalanceCompany: 2852.48,
			GPFInterestRate:          7.10,
			SBUAllocationRatio:       5.40,
			ClaimedGPFInterestSBU:    9.94,
		},
		IFCOther: heuristics.IFCOtherInputs{
			ClaimedGBI:         0.19,
			ClaimedBankCharges: 0.28,
		},
		MTBond: heuristics.MasterTrustBondInputs{
			TotalBondInterest:      570.08,
			SBUAllocationRatio:     5.59,
			ClaimedBondInterestSBU: 31.88,
		},
		MTRepayment: heuristics.MasterTrustRepaymentInputs{
			AnnualPrincipalRepayment:     407.20,
			SBUAllocationRatio:           5.40,
			ClaimedPrincipalRepaymentSBU: 21.99,
		},
		MTAdditional: heuristics.MasterTrustAdditionalInputs{
			ActuarialLiabilityCurrentYear:    1468.96,
			ProvisionalCap:                   400.0,
			SBUAllocationRatio:               5.40,
			ClaimedAdditionalContributionSBU: 21.60,
		},
		OtherExpenses:    sharedOtherExpensesDefaults(),
		ExceptionalItems: sharedExceptionalDefaults(),
		Intangible:       heuristics.IntangibleInputs{},
		NTI:              sharedNTIDefaults(),
	}
}

func transmissionDefaults() TransmissionInputs {
	return TransmissionInputs{
		OM: heuristics.TransOMNormInputs{
			NormPerBay:   7.884,
			NormPerMVA:   0.872,
			NormPerCktKm: 1.592,

			OpeningBays:  2905,
			OpeningMVA:   25344.5,
			OpeningCktKm: 10633.90,

			AddedBays:  24,
			AddedMVA:   785.0,
			AddedCktKm: 166.23,

			MYTApprovedOM:    644.81,
			ActualOMAccounts: 588.95,
			ClaimedOM:        625.20,

			Escalation2022_23: 0.0706,
			Escalation2023_24: 0.0341,
		},
		ROE: heuristics.ROEInputs{
			EquityCapital: 857.05,
			ROERate:       0.14,
			ClaimedROE:    119.99,
		},
		Depreciation:     sharedDepreciationDefaults(),
		IFCLongTermLoans: sharedIFCLTLDefaults(),
		IFCWorkingCapital: heuristics.IFCWorkingCapitalInputs{
			ApprovedOMExpenses: 186.16,
			OpeningGFAExclLand: 5453.56,
			SBIEBLRRate:        9.15,
			ClaimedWCInterest:  9.21,
		},
		IFCGPF: heuristics.IFCGPFInputs{
			OpeningGPFBalanceCompany: 3000.09,
			ClosingGPFBalanceCompany: 2852.48,
			GPFInterestRate:          7.10,
			SBUAllocationRatio:       5.40,
			ClaimedGPFInterestSBU:    9.94,
		},
		IFCOther: heuristics.IFCOtherInputs{
			ClaimedBankCharges: 0.28,
		},
		MTBond: heuristics.MasterTrustBondInputs{
			TotalBondInterest:      570.08,
			SBUAllocationRatio:     5.59,
			ClaimedBondInterestSBU: 31.88,
		},
		MTRepayment: heuristics.MasterTrustRepaymentInputs{
			AnnualPrincipalRepayment:     407.20,
			SBUAllocationRatio:           5.40,
			ClaimedPrincipalRepaymentSBU: 21.99,
		},
		MTAdditional: heuristics.MasterTrustAdditionalInputs{
			ActuarialLiabilityCurrentYear:    1468.96,
			ProvisionalCap:                   400.0,
			SBUAllocationRatio:               5.40,
			ClaimedAdditionalContributionSBU: 21.60,
		},
		EdamonKochi: heuristics.TransCompensationInputs{
			LineName: "Edamon-Kochi 400kV Transmission Line",
			CompensationEntries: []heuristics.CompensationEntry{
				{TotalCompensationCr: 5.20, YearOfDisbursement: "2019-20", KSEBShare50Pct: 2.60},
				{TotalCompensationCr: 0.80, YearOfDisbursement: "2019-20", KSEBShare50Pct: 0.40},
				{TotalCompensationCr: 12.00, YearOfDisbursement: "2019-20", KSEBShare50Pct: 6.00},
				{TotalCompensationCr: 22.00, YearOfDisbursement: "2020-21", KSEBShare50Pct: 11.00},
				{TotalCompensationCr: 40.65, YearOfDisbursement: "2021-22", KSEBShare50Pct: 20.33},
				{TotalCompensationCr: 25.78, YearOfDisbursement: "2022-23", KSEBShare50Pct: 12.89},
			},
			AvgInterestRate:     0.0861,
			ClaimedCompensation: 8.06,
			MYTApproved:         14.94,
			AssessmentYear:      "2023-24",
		},
		PugalurThrissur: heuristics.TransCompensationInputs{
			LineName: "Pugalur-Thrissur 320kV HVDC Line",
			CompensationEntries: []heuristics.CompensationEntry{
				{TotalCompensationCr: 0.0603, YearOfDisbursement: "2021-22", KSEBShare50Pct: 0.0301},
				{TotalCompensationCr: 2.4983, YearOfDisbursement: "2021-22", KSEBShare50Pct: 2.4983},
				{TotalCompensationCr: 4.83, YearOfDisbursement: "2022-23", KSEBShare50Pct: 4.83},
				{TotalCompensationCr: 0.154, YearOfDisbursement: "2023-24", KSEBShare50Pct: 0.154},
			},
			AvgInterestRate:     0.0861,
			ClaimedCompensation: 1.24,
			AssessmentYear:      "2023-24",
		},
		Intangible:       heuristics.IntangibleInputs{},
		OtherExpenses:    sharedOtherExpensesDefaults(),
		ExceptionalItems: sharedExceptionalDefaults(),
		Incentive: heuristics.TransIncentiveInputs{
			TargetAvailability:    98.50,
			ActualAvailability:    99.17,
			SLDCCertified:         true,
			ARRExcludingIncentive: 1542.64,
			ClaimedIncentive:      10.49,
			UnbridgedRevenueGap:   6408.37,
			RevenueGapThreshold:   5000.0,
		},
		NTI: sharedNTIDefaults(),

		Loss: heuristics.TransLossInputs{
			TotalEnergyInput:        31406.32,
			TransmissionLossMU:      819.23,
			MYTApprovedTransLossPct: 2.75,
			Loss400kVMU:             120.10,
			Loss220kVMU:             410.55,
			Loss110kVMU:             250.30,
			Loss66kVMU:              38.28,
			PeakDemandMW:            5301,
		},
		LossCombined: heuristics.TDLossCombinedInputs{
			TotalEnergyInputMU:   31124.10,
			TotalEnergySoldMU:    28105.07,
			MYTApprovedTDLossPct: 8.90,
			TransmissionLossMU:   819.23,
			DistributionLossMU:   2226.86,
			ActualTDLossPct:      9.76,
		},
		Reward: heuristics.TDRewardInputs{
			ApprovedTDLossPct:        13.83,
			ActualTDLossPct:          12.10,
			TotalEnergyInputMU:       31406.32,
			AvgPowerPurchaseCostUnit: 4.50,
			ClaimedReward:            131.59,
		},
	}
}

func distributionDefaults() DistributionInputs {
	return DistributionInputs{
		Transfers: TransferInputs{
			ClaimedFromGeneration:    626.48,
			ApprovedFromGeneration:   598.70,
			ClaimedFromTransmission:  1553.14,
			ApprovedFromTransmission: 1505.80,
		},
		PowerPurchase: heuristics.PowerPurchaseInputs{
			CostOfGenerationSBUGClaimed:    626.48,
			CostOfGenerationSBUGApproved:   598.70,
			CostOfTransmissionSBUTClaimed:  1553.14,
			CostOfTransmissionSBUTApproved: 1505.80,

			ExternalPPClaimed:  12982.59,
			ExternalPPApproved: 12773.50,

			CGSCost:                4731.09,
			LTATotalCost:           2741.10,
			ExchangeCost:           2123.16,
			InterstateTransmission: 1448.27,
			BankingSwapDisallowed:  209.13,

			TotalEnergyPurchasedMU: 25711.29,
			MYTApprovedTotalPP:     10564.23,
			MYTApprovedAvgRate:     4.66,
		},
		OM: heuristics.DistOMNormInputs{
			NumConsumers:  13648851,
			NumDTRs:       87911,
			HTLineKm:      70269.0,
			LTLineKm:      302626.0,
			EnergySalesMU: 25255.0,

			NormPer1000Consumers: 4.539,
			NormPerDTR:           0.896,
			NormPerHTKm:          0.887,
			NormPerLTKm:          0.194,
			NormPerMU:            0.200,

			GFASBUDOpening:  15961.16,
			GFADerecognized: 805.39,
			GFALand:         22.52,
			RMRate:          0.04,

			ClaimedEmployeeAG: 3152.28,
			ClaimedRM:         631.28,
			ClaimedTotalOM:    3783.56,
			MYTApprovedOM:     3605.39,
		},
		IFCLongTermLoans: heuristics.IFCLongTermLoanInputs{
			OpeningNormativeLoan: 5200.00,
			GFAAdditions:         355.00,
			Depreciation:         307.66,
			OpeningInterestRate:  8.52,
			ClaimedInterest:      483.76,
		},
		IFCSecurity: heuristics.IFCSecurityDepositInputs{
			MYTApprovedSDInterest: 156.11,
			ActualDisbursement:    146.88,
			ProvisionInAccounts:   265.92,
			AvgSecurityDeposit:    4146.85,
			InterestRateApplied:   6.75,
			ClaimedSDInterest:     265.92,
		},
		IFCGPF: heuristics.IFCGPFInputs{
			OpeningGPFBalanceCompany: 3000.09,
			ClosingGPFBalanceCompany: 2852.48,
			GPFInterestRate:          7.10,
			SBUAllocationRatio:       100.0,
			ClaimedGPFInterestSBU:    164.88,
		},
		IFCOtherDist: heuristics.IFCOtherDistInputs{
			OtherBankCharges:        0.81,
			InterestOnPowerPurchase: 43.26,
			ClaimedOtherInterest:    44.07,
		},
		IFCMTBond: heuristics.MasterTrustBondInputs{
			TotalBondInterest:      477.03,
			SBUAllocationRatio:     100.0,
			ClaimedBondInterestSBU: 477.03,
		},
		IFCCarryingCost: heuristics.IFCCarryingCostInputs{
			RevenueGapAsOn0104:      6408.37,
			AvgGPFBalance:           2926.29,
			ExcessSecurityDeposit:   451.04,
			AvgInterestRate:         8.52,
			ClaimedCarryingCost:     321.24,
			MYTApprovedCarryingCost: 211.91,
		},
		IFCWorking: heuristics.IFCWorkingCapitalInputs{
			ApprovedOMExpenses: 3728.01,
			OpeningGFAExclLand: 15133.25,
			SBIEBLRRate:        9.15,
		},
		MTAdditional: heuristics.MasterTrustAdditionalInputs{
			ActuarialLiabilityCurrentYear:    333.42,
			ProvisionalCap:                   400.0,
			SBUAllocationRatio:               100.0,
			ClaimedAdditionalContributionSBU: 333.42,
			ActuarialReportSubmitted:         true,
			GovtApprovalObtained:             true,
		},
		Depreciation: sharedDepreciationDefaults(),
		PayRevision: heuristics.EmployeePayRevisionInputs{
			EmployeeCostNormative:  3122.68,
			EmployeeCostActual:     3152.28,
			PayRevisionImplemented: true,
		},
		ROE: heuristics.ROEInputs{
			EquityCapital: 1810.73,
			ROERate:       0.14,
			ClaimedROE:    253.50,
		},
		OtherExpenses:    sharedOtherExpensesDefaults(),
		ExceptionalItems: sharedExceptionalDefaults(),
		TDShare: heuristics.TDShareInputs{
			ApprovedTDLossPct:    10.82,
			ActualTDLossKSEBLPct: 9.70,
			ActualTDLossKSERCPct: 9.76,
			EnergySalesMU:        28105.07,
			AvgPPCostPerUnit:     5.05,
			ClaimedGainSharing:   131.59,
			UnbridgedRevenueGap:  6408.37,
		},
		Intangible: heuristics.IntangibleInputs{},
		BondRepayment: heuristics.MasterTrustRepaymentInputs{
			AnnualPrincipalRepayment:     339.40,
			SBUAllocationRatio:           100.0,
			ClaimedPrincipalRepaymentSBU: 339.42,
		},
		NTI: sharedNTIDefaults(),

		DistLoss: heuristics.DistLossInputs{
			EnergyInputToDistMU:     30587.11,
			EnergyOutputMU:          28360.25,
			MYTTargetDistLossPct:    7.78,
			MYTTargetATCLossPct:     11.71,
			CollectionEfficiencyPct: 99.72,
			ClaimedDistLossPct:      7.28,
		},
	}
}

// The shared cost items carry the same accounts-derived figures in
// every unit; only equity and the unit-specific blocks differ.

func sharedDepreciationDefaults() heuristics.DepreciationInputs {
	return heuristics.DepreciationInputs{
		GFAOpeningTotal:    5695.7,
		GFA13To30Years:     3033.9,
		Land13To30Years:    81.6,
		GFABelow13Years:    2294.0,
		LandBelow13Years:   145.5,
		GrantsBelow13Years: 112.1,

		AssetAdditions: 405.9,

		ClaimedDepreciation: 157.0,
	}
}

func sharedIFCLTLDefaults() heuristics.IFCLongTermLoanInputs {
	return heuristics.IFCLongTermLoanInputs{
		OpeningNormativeLoan: 896.34,
		GFAAdditions:         410.20,
		Depreciation:         157.02,
		OpeningInterestRate:  8.35,
		ClaimedInterest:      104.46,
	}
}

func sharedOtherExpensesDefaults() heuristics.OtherExpensesInputs {
	return heuristics.OtherExpensesInputs{
		ClaimedFloodLosses:  0.07,
		FloodSupportingDocs: true,
	}
}

func sharedExceptionalDefaults() heuristics.ExceptionalItemsInputs {
	return heuristics.ExceptionalItemsInputs{
		ClaimedCalamityRM:      0.02,
		SeparateAccountCode:    true,
		CalamitySupportingDocs: true,
	}
}

func sharedNTIDefaults() heuristics.NTIInputs {
	return heuristics.NTIInputs{
		MYTBaselineNTI:         10.81,
		BaseIncomeFromAccounts: 33.21,
		ClaimedNTI:             40.21,
	}
}
