// Package vireo provides:
//
//   - Immutable, chainable validator nodes (String/Number/Bool/Null/Any/Literal,
//     Object/List/Tuple/Dict/Union) built by copy-on-write modifier calls
//   - A stable error model via ValidationErrorGroup (path, code, message),
//     collected exhaustively instead of fail-fast
//   - Dual execution: Validate (synchronous recursion) and ValidateAsync
//     (structured-concurrency fan-out with deterministic re-sequencing)
//   - Non-destructive schema transformation through Extend/Omit/Exclude
//   - Introspection via Describe for external generators
//
// Design policy:
//   - Schemas are immutable after construction; every modifier returns a new node.
//   - Validation is a pure function of (schema, input); the only mutable state
//     is lazily-computed idempotent caches (compiled patterns, discriminator maps).
//   - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	user := vireo.Object().
//	        Field("username", vireo.String().Min(3)).
//	        Field("age", vireo.Number().Int().Min(18))
//
//	v, err := user.Validate(ctx, input)
//	v, err = vireo.ParseJSON(ctx, user, body)
package vireo
