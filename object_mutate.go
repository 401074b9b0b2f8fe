package vireo

// Extend returns a new schema whose fields are this schema's fields followed
// by extra's, in their respective declaration orders. The receiver keeps its
// additional-properties policy and pattern properties. A key present in both
// schemas is a schema-authoring conflict and panics with *SchemaError naming
// every colliding key; the base schema is never touched.
func (o *ObjectSchema) Extend(extra *ObjectSchema) *ObjectSchema {
	var collisions []string
	for _, f := range extra.fields {
		if _, exists := o.index[f.name]; exists {
			collisions = append(collisions, f.name)
		}
	}
	if len(collisions) > 0 {
		panic(&SchemaError{
			Code:    CodeSchemaConstructionConflict,
			Keys:    collisions,
			Message: "extend collides with existing fields",
		})
	}

	c := o.clone()
	fields := make([]fieldEntry, 0, len(o.fields)+len(extra.fields))
	fields = append(fields, o.fields...)
	fields = append(fields, extra.fields...)
	c.fields = fields
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		index[f.name] = i
	}
	c.index = index
	return c
}

// Omit returns a new schema without the named fields. The additional
// properties policy is unchanged, so under Strict an omitted key present in
// input becomes an unexpected_field error, while under the default
// passthrough policy it is silently accepted.
func (o *ObjectSchema) Omit(keys ...string) *ObjectSchema {
	drop := make(map[string]bool, len(keys))
	for _, k := range keys {
		drop[k] = true
	}

	c := o.clone()
	fields := make([]fieldEntry, 0, len(o.fields))
	for _, f := range o.fields {
		if !drop[f.name] {
			fields = append(fields, f)
		}
	}
	c.fields = fields
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		index[f.name] = i
	}
	c.index = index
	return c
}

// Exclude returns a new schema where the named fields stay declared (so they
// never trip Strict) but skip all checks: when present, the raw input value
// is copied to the output unchanged; when absent, the field is omitted.
func (o *ObjectSchema) Exclude(keys ...string) *ObjectSchema {
	skip := make(map[string]bool, len(keys))
	for _, k := range keys {
		skip[k] = true
	}

	c := o.clone()
	fields := make([]fieldEntry, 0, len(o.fields))
	for _, f := range o.fields {
		if skip[f.name] {
			f.schema = Any().Optional()
		}
		fields = append(fields, f)
	}
	c.fields = fields
	return c
}
