// Package dom implements an in-memory document object model: a tree of typed
// nodes owned by an isolated Sandbox.
//
// OWNERSHIP:
//
// Ownership points strictly downward. A Sandbox owns its Window, the Window
// owns its Document, and every node owns its children through its child
// sequence. Every other relation is a weak.Pointer that must be resolved,
// and may fail, at the point of use:
//
//	Sandbox ──▶ Window ──▶ Document ──▶ children ──▶ children ...
//	   ▲          ▲           │             │
//	   └──────────┴─── weak ──┴─────────────┘
//
// No node stores its parent. The tree grows by AppendChild only; there is
// no removal or reparenting. A node lives as long as a caller holds a handle
// to it or it sits in some parent's child sequence.
//
// A Sandbox is dropped either when it becomes unreachable and is collected,
// or when Close is called. Afterwards every operation that has to reach the
// sandbox fails with ErrSandboxDropped. Graph-local operations (FirstChild,
// LastChild, AppendChild, ChildNodes) never touch the sandbox and keep
// working.
//
// NODE RECORDS AND HANDLES:
//
// Each node is one record holding its capability delegates and its payload
// (a Store). Stores form a closed set of nine kinds, sealed by an unexported
// method:
//
//	ElementStore, AttributeStore, TextStore, CDataSectionStore,
//	ProcessingInstructionStore, CommentStore, DocumentStore,
//	DocumentTypeStore, DocumentFragmentStore
//
// A record is reached through handles. AnyNode is the erased handle; each
// kind has a concrete handle (ElementNode, TextNode, DocumentNode, ...)
// built on the generic Node[S]. Converting between them never copies the
// record:
//
//	text := doc.CreateTextNode("hi")   // TextNode
//	n := text.Any()                    // AnyNode, same record
//	back, err := AsText(n)             // TextNode again
//	_, err = AsComment(n)              // ErrNodeCastFail
//
// CAPABILITIES:
//
// Behaviour shared by all kinds is split into delegates with their own
// storage, embedded in every record and promoted onto every handle:
//
//   - SandboxMember: Context, and Build through templates
//   - NodeGraph: FirstChild, LastChild, AppendChild, ChildNodes
//   - ParentNode: ChildElementCount, QuerySelector, QuerySelectorAll
//
// SELECTORS:
//
// Only single tag-name selectors are recognised: ASCII letters and digits,
// matched case-insensitively against element tag names. QuerySelector
// searches descendants in pre-order and never matches the node it is called
// on; QuerySelectorInclusive checks that node first.
//
// CONCURRENCY:
//
// Handles may be copied and dropped from any goroutine, but nothing guards a
// node's child sequence or payload. Mutation of one sandbox's tree must be
// confined to one goroutine at a time.
package dom
