// Package infer derives a form schema from a sample CLM parameter document.
//
// Every leaf element (an element holding only text) becomes a FieldSpec whose
// type is guessed from the sample text: yes/no answers become selects, values
// with "@" become emails, digit runs become numbers, North-American phone
// numbers become tel inputs and long values become textareas. Multi-level
// structure is a documented limitation: container elements, elements with
// attributes and namespaced elements are reported in Result.Skipped.
package infer
