package service

import (
	"fmt"
	"strings"

	"github.com/docmind-ai/multirag-be/types"
)

// answerPromptTemplate instructs the model to answer strictly from the
// retrieved excerpts and to cite pages and table/figure/image labels. These
// are instructions to the model, not guarantees.
const answerPromptTemplate = `You are a professional research analyst.

Answer the question strictly using the information contained in the document excerpts below.
Do not mention the phrases "provided context", "given context", or similar meta-references.
Do not include conversational language or assumptions.

Writing guidelines:
- Use a formal, neutral, and analytical tone.
- Present information directly and concisely.
- If information is missing, clearly state that it is not available in the document.
- Do not speculate or add external knowledge.

Citation rules:
- List citations in a separate section.
- Each citation must include page number and table/figure/image reference if available.
- Use this format exactly:
  - Page X, Table/Figure/Image Y (if applicable)

<Document Excerpts>
%s
</Document Excerpts>

Question:
%s
`

// CitationHeader renders the provenance marker for one chunk:
// "(Page 4, Table 2)" for referenced units, "(Page 7)" for plain text.
func CitationHeader(meta types.ChunkMetadata) string {
	if meta.Reference != "" {
		return fmt.Sprintf("(Page %d, %s)", meta.Page, meta.Reference)
	}
	return fmt.Sprintf("(Page %d)", meta.Page)
}

// AssembleContext renders retrieved chunks into one prompt-ready string.
// Retrieval order is preserved; each chunk becomes a citation header followed
// by its content, blocks separated by a blank line. Deduplication, re-ranking
// and token budgeting are the caller's problem, not this function's.
func AssembleContext(chunks []types.Chunk) string {
	blocks := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		blocks = append(blocks, CitationHeader(chunk.Metadata)+"\n"+chunk.Content)
	}
	return strings.Join(blocks, "\n\n")
}

// RenderAnswerPrompt fills the answer template with the assembled context and
// the verbatim question.
func RenderAnswerPrompt(context, question string) string {
	return fmt.Sprintf(answerPromptTemplate, context, question)
}
