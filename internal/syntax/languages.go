package syntax

// registerBuiltins installs the built-in language profiles.
func registerBuiltins(r *Registry) {
	r.Register(NewProfile("Rust", "rs").
		AddKeywords(
			"fn", "let", "mut", "const", "static", "if", "else", "match", "for", "while",
			"loop", "return", "break", "continue", "struct", "enum", "impl", "trait", "type",
			"pub", "mod", "use", "crate", "self", "super", "as", "in", "ref", "move", "where",
			"async", "await", "dyn", "unsafe", "extern", "true", "false",
		).
		AddTypes(
			"u8", "u16", "u32", "u64", "u128", "usize", "i8", "i16", "i32", "i64", "i128",
			"isize", "f32", "f64", "bool", "char", "str", "String", "Vec", "Option", "Result",
			"Box", "Rc", "Arc", "Self", "Ok", "Err", "Some", "None", "HashMap", "HashSet",
			"BTreeMap", "BTreeSet", "PathBuf", "Path", "io", "fs", "fmt", "Display",
		).
		WithLineComment("//").
		WithBlockComment("/*", "*/").
		WithMacros().
		WithLifetimes())

	r.Register(NewProfile("JavaScript", "js", "jsx", "ts", "tsx", "mjs").
		AddKeywords(
			"function", "var", "let", "const", "if", "else", "for", "while", "do",
			"switch", "case", "break", "continue", "return", "new", "delete", "typeof",
			"instanceof", "in", "of", "class", "extends", "super", "this", "import",
			"export", "default", "from", "as", "try", "catch", "finally", "throw",
			"async", "await", "yield", "true", "false", "null", "undefined", "void",
		).
		AddTypes(
			"Array", "Object", "String", "Number", "Boolean", "Map", "Set", "Promise",
			"Date", "RegExp", "Error", "JSON", "Math", "console", "window", "document",
			"any", "string", "number", "boolean", "never", "unknown", "interface",
			"type", "enum",
		).
		WithLineComment("//").
		WithBlockComment("/*", "*/"))

	r.Register(NewProfile("Python", "py").
		AddKeywords(
			"def", "class", "if", "elif", "else", "for", "while", "break", "continue",
			"return", "pass", "import", "from", "as", "try", "except", "finally", "raise",
			"with", "yield", "lambda", "and", "or", "not", "in", "is", "global", "nonlocal",
			"assert", "del", "True", "False", "None", "async", "await",
		).
		AddTypes(
			"int", "float", "str", "bool", "list", "dict", "tuple", "set", "bytes",
			"type", "object", "range", "print", "len", "self", "super", "Exception",
		).
		WithLineComment("#"))

	r.Register(NewProfile("C", "c", "h").
		AddKeywords(
			"auto", "break", "case", "char", "const", "continue", "default", "do", "double",
			"else", "enum", "extern", "float", "for", "goto", "if", "int", "long", "register",
			"return", "short", "signed", "sizeof", "static", "struct", "switch", "typedef",
			"union", "unsigned", "void", "volatile", "while", "inline", "restrict", "NULL",
			"true", "false",
		).
		AddTypes(
			"int", "char", "float", "double", "long", "short", "unsigned", "signed", "void",
			"size_t", "uint8_t", "uint16_t", "uint32_t", "uint64_t", "int8_t", "int16_t",
			"int32_t", "int64_t", "FILE", "bool",
		).
		WithLineComment("//").
		WithBlockComment("/*", "*/"))

	r.Register(NewProfile("C++", "cpp", "cc", "cxx", "hpp").
		AddKeywords(
			"auto", "break", "case", "catch", "class", "const", "continue", "default",
			"delete", "do", "else", "enum", "extern", "for", "friend", "goto", "if",
			"inline", "namespace", "new", "operator", "private", "protected", "public",
			"return", "sizeof", "static", "struct", "switch", "template", "this", "throw",
			"try", "typedef", "union", "using", "virtual", "void", "volatile", "while",
			"override", "final", "noexcept", "constexpr", "nullptr", "true", "false",
		).
		AddTypes(
			"int", "char", "float", "double", "long", "short", "unsigned", "signed",
			"void", "bool", "string", "vector", "map", "set", "pair", "size_t",
			"wchar_t", "unique_ptr", "shared_ptr", "weak_ptr", "std",
		).
		WithLineComment("//").
		WithBlockComment("/*", "*/"))

	r.Register(NewProfile("Go", "go").
		AddKeywords(
			"break", "case", "chan", "const", "continue", "default", "defer", "else",
			"fallthrough", "for", "func", "go", "goto", "if", "import", "interface",
			"map", "package", "range", "return", "select", "struct", "switch", "type",
			"var", "true", "false", "nil",
		).
		AddTypes(
			"int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16",
			"uint32", "uint64", "float32", "float64", "complex64", "complex128",
			"byte", "rune", "string", "bool", "error", "any",
		).
		WithLineComment("//").
		WithBlockComment("/*", "*/"))

	r.Register(NewProfile("Java", "java", "kt", "kts").
		AddKeywords(
			"abstract", "assert", "boolean", "break", "byte", "case", "catch", "char",
			"class", "const", "continue", "default", "do", "double", "else", "enum",
			"extends", "final", "finally", "float", "for", "goto", "if", "implements",
			"import", "instanceof", "int", "interface", "long", "native", "new",
			"package", "private", "protected", "public", "return", "short", "static",
			"strictfp", "super", "switch", "synchronized", "this", "throw", "throws",
			"transient", "try", "void", "volatile", "while", "true", "false", "null",
		).
		AddTypes(
			"String", "Integer", "Boolean", "Double", "Float", "Long", "Short", "Byte",
			"Character", "Object", "List", "Map", "Set", "ArrayList", "HashMap",
			"HashSet", "Optional", "Stream", "var", "val",
		).
		WithLineComment("//").
		WithBlockComment("/*", "*/"))

	r.Register(NewProfile("TOML", "toml").
		AddKeywords("true", "false").
		WithLineComment("#"))

	r.Register(NewProfile("YAML", "yaml", "yml").
		AddKeywords("true", "false", "null", "yes", "no", "on", "off").
		WithLineComment("#"))

	r.Register(NewProfile("Shell", "sh", "bash", "zsh").
		AddKeywords(
			"if", "then", "else", "elif", "fi", "for", "while", "do", "done", "case",
			"esac", "function", "return", "exit", "echo", "read", "local", "export",
			"source", "set", "unset", "shift", "true", "false",
		).
		WithLineComment("#"))

	r.Register(NewProfile("CSS", "css", "scss", "sass").
		AddKeywords(
			"import", "media", "keyframes", "font-face", "charset", "supports",
			"namespace", "page", "important", "from", "to",
		).
		WithBlockComment("/*", "*/"))

	r.Register(NewProfile("HTML", "html", "htm", "xml", "svg").
		WithBlockComment("<!--", "-->"))

	r.Register(NewProfile("JSON", "json").
		AddKeywords("true", "false", "null"))

	r.Register(NewProfile("Markdown", "md", "markdown"))

	sqlKeywords := []string{
		"select", "from", "where", "insert", "update", "delete", "create", "drop",
		"alter", "table", "index", "view", "into", "values", "set", "join", "left",
		"right", "inner", "outer", "on", "and", "or", "not", "null", "is", "in",
		"like", "between", "order", "by", "group", "having", "limit", "offset",
		"union", "all", "as", "distinct", "exists", "case", "when", "then", "else",
		"end", "primary", "key", "foreign", "references", "true", "false",
	}
	sql := NewProfile("SQL", "sql").
		AddTypes(
			"INT", "INTEGER", "BIGINT", "SMALLINT", "FLOAT", "DOUBLE", "VARCHAR",
			"CHAR", "TEXT", "BOOLEAN", "DATE", "TIMESTAMP", "BLOB", "DECIMAL", "NUMERIC",
		).
		WithLineComment("--").
		WithBlockComment("/*", "*/")
	for _, kw := range sqlKeywords {
		sql.AddKeywords(kw, upperASCII(kw))
	}
	r.Register(sql)
}

func upperASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}
