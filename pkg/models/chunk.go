package models

// ChunkMetadata addresses a chunk within its source file. Frontend chunks
// carry the zero value, which serializes as an empty object. Whole-file
// chunks use FunctionName "whole_file" and Type "file".
type ChunkMetadata struct {
	FilePath     string `json:"file_path,omitempty"`
	FunctionName string `json:"function_name,omitempty"`
	SymbolID     string `json:"symbol_id,omitempty"`
	Kind         string `json:"kind,omitempty"`
	Type         string `json:"type,omitempty"`
	StartLine    int    `json:"start_line,omitempty"`
	EndLine      int    `json:"end_line,omitempty"`
}

// WholeFileName marks a chunk that covers an entire file.
const WholeFileName = "whole_file"

// Chunk is a text+metadata unit handed to the downstream indexer.
type Chunk struct {
	Text     string        `json:"text"`
	Metadata ChunkMetadata `json:"metadata"`
}
