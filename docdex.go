// Package docdex provides a documentation ingestion and retrieval engine.
// It crawls documentation sites with depth, page-count, and domain policies,
// splits extracted text into overlapping token windows, indexes chunk
// embeddings for cosine-similarity search, and answers natural language
// queries through a cached, best-effort LLM pipeline (rerank, answer
// extraction, summarization, code-block extraction).
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, gemini/) or
// their concern (e.g., crawl/, retrieve/).
package docdex
