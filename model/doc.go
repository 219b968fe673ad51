// Package model defines the intermediate question records produced by
// extraction and consumed by packaging. One record is one question (or one
// crossword part); records are serialized to JSON files in the intermediate
// directory tree, which is a stable, human-editable interface between the
// two pipeline stages.
package model
