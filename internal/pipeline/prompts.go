package pipeline

// Phase prompts. The extraction service treats these as opaque
// instruction text; the pipeline only cares about the JSON schemas the
// responses must follow, which match the artifact package's parsers.

const preliminaryPrompt = `You are reviewing a regulated financial marketing document.
Extract every item of evidentiary interest into the categories below. Quote
text verbatim, record the page number where each item appears, and do not
paraphrase, summarize, or correct anything you quote.

Categories:
- disclaimers: regulatory boilerplate and risk language
- performance_data: returns, yields, rankings over time
- rankings_awards: third-party ratings, awards, league tables
- definitions: terms the document defines
- footnotes: numbered or symbol-keyed footnotes with their referents
- data_sources: named sources and as-of dates
- qualifications: hedges and caveats attached to other statements
- audience_indicators: intended-audience signals
- temporal_context: report dates, period ends, publication dates
- visual_elements: charts, tables, graphics and what they imply

Respond with a single JSON object:
{"document_metadata": {}, "disclaimers": [], "performance_data": [],
 "rankings_awards": [], "definitions": [], "footnotes": [],
 "data_sources": [], "qualifications": [], "audience_indicators": {},
 "temporal_context": {}, "visual_elements": []}
Output JSON only, no surrounding prose.`

const registryPrompt = `Build an evidence registry for the attached document by
cross-referencing it with the preliminary extraction provided above.

For every assertion the document makes, emit a claim:
- claim_id: unique within this registry (C1, C2, ...)
- page: the page or page range where it appears ("3" or "3-4")
- location: headline | body | footnote | caption | visual | footer
- claim_type: one of misleading_exaggerated, performance_data, disclosures,
  testimonials_awards, digital_distribution, comparisons, rankings_ratings,
  third_party_ip
- exact_text: the verbatim span, preserved exactly including errors
- support: whether supporting evidence exists in the document, its text,
  location, type, and quality (adequate | partial | weak | contradictory | absent)
- flags: zero or more observations (NO_SUPPORT, GUARANTEED_LANGUAGE,
  REGULATORY_ERROR, INTERNAL_CONTRADICTION, ...)

Record contradictions between claims (text_a/text_b verbatim, claim_ids,
type: factual | regulatory | numerical | tonal) and coverage_gaps for
preliminary items neither promoted to a claim nor used as support.

Respond with a single JSON object:
{"registry": {"meta": {}, "claims": [], "contradictions": [], "coverage_gaps": []}}
Output JSON only, no surrounding prose.`

const detectPrompt = `The JSON below contains evidence-registry claims filtered to
those potentially misleading or exaggerated, plus contradictions that
reference them. Identify candidate violations: statements that are
unsubstantiated, promissory, absolute, unbalanced, exaggerated, or vague.

For each candidate emit: claim_id, sentence (verbatim), page_number,
candidate_sub_bucket, severity, confidence, brief_reason.

Respond with a single JSON object: {"candidates": []}
Output JSON only, no surrounding prose.`

const validatePrompt = `Validate each candidate below against its attached
registry entry and the registry contradictions. For each candidate decide a
disposition: FLAG if the violation holds up under its support and context,
CLEAR otherwise. A claim with adequate, proximate support is CLEAR even when
its language is strong.

For every candidate emit a diagnostic: sentence, page_number, disposition
(FLAG or CLEAR), sub_bucket, reasoning. For FLAG dispositions also build the
corresponding report sections.

Respond with a single JSON object: {"diagnostics": [], "sections": []}
Output JSON only, no surrounding prose.`
