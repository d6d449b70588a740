// Package section splits a .hyr template source into its named segments.
//
// A template is plain text carrying up to five tagged sections:
//
//	<metadata html>...</metadata>
//	<metas html>...</metas>
//	<displayer html>...</displayer>
//	<transmuter go>...</transmuter>
//	<manifestor js>...</manifestor>
//
// plus any number of <style src="PATH"/> references. Only the first
// occurrence of each section is used. Missing sections are empty strings,
// malformed markup silently yields partial or empty sections.
//
//	tpl := section.Extract(src)
//	if tpl.HasTransmuter() {
//	    // evaluate view-model code
//	}
package section
