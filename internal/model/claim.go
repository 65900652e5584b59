package model

// Claim represents one asserted statement extracted from a marketing document
type Claim struct {
	ClaimID   string    `json:"claim_id"`          // Unique within a registry
	DocID     string    `json:"doc_id,omitempty"`  // Source document reference
	Page      string    `json:"page"`              // Page number or range ("3", "3-4", "3,5")
	Location  Location  `json:"location,omitempty"` // Where on the page the claim appears
	ClaimType ClaimType `json:"claim_type"`        // One of the 8 fixed categories
	ExactText string    `json:"exact_text"`        // Verbatim span from the document
	Support   *Support  `json:"support,omitempty"` // Backing evidence, if any
	Flags     []Flag    `json:"flags,omitempty"`   // Observations, not verdicts
}

// HasFlag reports whether the claim carries the given flag
func (c Claim) HasFlag(f Flag) bool {
	for _, have := range c.Flags {
		if have == f {
			return true
		}
	}
	return false
}

// Support is the evidence backing a claim, with a quality rating.
// A claim with adequate support may still carry flags.
type Support struct {
	Exists   bool           `json:"exists"`
	Text     string         `json:"text,omitempty"`
	Location string         `json:"location,omitempty"`
	Type     SupportType    `json:"type,omitempty"`
	Quality  SupportQuality `json:"quality,omitempty"`
}

// Location describes where on a page a claim appears
type Location string

const (
	LocationHeadline Location = "headline"
	LocationBody     Location = "body"
	LocationFootnote Location = "footnote"
	LocationCaption  Location = "caption"
	LocationVisual   Location = "visual"
	LocationFooter   Location = "footer"
)

// ClaimType categorizes the nature of the claim
type ClaimType string

const (
	ClaimMisleadingExaggerated ClaimType = "misleading_exaggerated"
	ClaimPerformanceData       ClaimType = "performance_data"
	ClaimDisclosures           ClaimType = "disclosures"
	ClaimTestimonialsAwards    ClaimType = "testimonials_awards"
	ClaimDigitalDistribution   ClaimType = "digital_distribution"
	ClaimComparisons           ClaimType = "comparisons"
	ClaimRankingsRatings       ClaimType = "rankings_ratings"
	ClaimThirdPartyIP          ClaimType = "third_party_ip"
)

// SupportType classifies the kind of backing evidence
type SupportType string

const (
	SupportFootnote       SupportType = "footnote"
	SupportBodyCaveat     SupportType = "body_caveat"
	SupportDisclosure     SupportType = "disclosure"
	SupportProspectusRef  SupportType = "prospectus_ref"
	SupportExternalCite   SupportType = "external_citation"
)

// SupportQuality rates how well the evidence backs the claim
type SupportQuality string

const (
	QualityAdequate      SupportQuality = "adequate"
	QualityPartial       SupportQuality = "partial"
	QualityWeak          SupportQuality = "weak"
	QualityContradictory SupportQuality = "contradictory"
	QualityAbsent        SupportQuality = "absent"
)

// Flag is a fixed-vocabulary observation attached to a claim
type Flag string

const (
	FlagNoSupport             Flag = "NO_SUPPORT"
	FlagStaleData             Flag = "STALE_DATA"
	FlagPlaceholderData       Flag = "PLACEHOLDER_DATA"
	FlagInternalContradiction Flag = "INTERNAL_CONTRADICTION"
	FlagCrossDocContradiction Flag = "CROSS_DOC_CONTRADICTION"
	FlagWinnerVsFinalist      Flag = "WINNER_VS_FINALIST"
	FlagFeeWaiverImpact       Flag = "FEE_WAIVER_IMPACT"
	FlagMissingDate           Flag = "MISSING_DATE"
	FlagMissingSource         Flag = "MISSING_SOURCE"
	FlagRegulatoryError       Flag = "REGULATORY_ERROR"
	FlagVisualImplication     Flag = "VISUAL_IMPLICATION"
	FlagProximityFail         Flag = "PROXIMITY_FAIL"
	FlagPeerSetUndefined      Flag = "PEER_SET_UNDEFINED"
	FlagGuaranteedLanguage    Flag = "GUARANTEED_LANGUAGE"
)

// ThemeRelevantFlags are the flags that pull a claim into the detection
// phase regardless of its claim_type.
var ThemeRelevantFlags = map[Flag]bool{
	FlagGuaranteedLanguage:    true,
	FlagRegulatoryError:       true,
	FlagNoSupport:             true,
	FlagInternalContradiction: true,
	FlagMissingSource:         true,
	FlagProximityFail:         true,
	FlagPeerSetUndefined:      true,
	FlagStaleData:             true,
	FlagWinnerVsFinalist:      true,
	FlagFeeWaiverImpact:       true,
	FlagVisualImplication:     true,
	FlagPlaceholderData:       true,
}
