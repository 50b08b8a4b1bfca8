package location

// Process classifies city and combines the result with an optional submitter
// confirmation into the record stored with a listing.
//
// A confirmation decides IsGlobal but never verifies the location; admin
// review is still required unless the classifier independently reaches high
// confidence. The two sources are not compared for agreement.
func Process(city string, confirmation Confirmation) ProcessedData {
	detection := Classify(city)

	if confirmation != ConfirmationNone {
		c := confirmation
		return ProcessedData{
			IsGlobal:                confirmation == ConfirmationOther,
			LocationConfirmation:    &c,
			LocationVerified:        false,
			LocationDetectionSource: SourceUserConfirmed,
			NeedsAdminReview:        detection.Confidence != ConfidenceHigh,
		}
	}

	if detection.Confidence == ConfidenceHigh {
		return ProcessedData{
			IsGlobal:                detection.Context == ContextOther,
			LocationVerified:        true,
			LocationDetectionSource: SourceAuto,
			NeedsAdminReview:        false,
		}
	}

	return ProcessedData{
		IsGlobal:                detection.Context == ContextOther,
		LocationVerified:        false,
		LocationDetectionSource: SourceAuto,
		NeedsAdminReview:        true,
	}
}
