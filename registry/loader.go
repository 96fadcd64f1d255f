package registry

import (
	"context"
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Load parses the primary registry XML followed by an ordered list of
// private registry XMLs, merges them into a single type/feature/extension
// graph, and resolves it. The first path is canonical: types first seen
// while parsing it are public; types first seen in any later path are
// private.
//
// Reading and unmarshalling the input files is the only concurrent phase:
// each file is parsed independently by its own goroutine and joined with
// errgroup before the strictly single-threaded merge+resolve phase begins.
func Load(ctx context.Context, paths []string) (*Registry, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("registry: no input files")
	}

	docs := make([]*xmlRegistry, len(paths))
	g, _ := errgroup.WithContext(ctx)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			doc, err := parseFile(p)
			if err != nil {
				return &IOError{Path: p, Err: err}
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	b := newBuilder()
	var canonicalNames map[string]bool
	for i, doc := range docs {
		b.mergeDocument(doc, i == 0)
		if i == 0 {
			canonicalNames = make(map[string]bool, len(b.types))
			for name := range b.types {
				canonicalNames[name] = true
			}
		}
	}
	for name, ty := range b.types {
		if ty.Name == name && !canonicalNames[name] {
			ty.IsPrivate = true
		}
	}

	reg, err := b.finish()
	if err != nil {
		return nil, err
	}
	if err := resolve(reg); err != nil {
		return nil, err
	}
	return reg, nil
}

func parseFile(path string) (*xmlRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc xmlRegistry
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// builder owns the type table during construction; resolve() hands callers
// back an immutable view, confining mutable state to construction time.
type builder struct {
	types     map[string]*Type
	typeOrder []string

	platforms map[string]string
	tags      map[string]bool

	features   []*Feature
	extensions []*Extension
}

func newBuilder() *builder {
	return &builder{
		types:     map[string]*Type{},
		platforms: map[string]string{},
		tags:      map[string]bool{},
	}
}

func isVulkanSC(api string) bool {
	for _, a := range strings.Split(api, ",") {
		if strings.TrimSpace(a) == "vulkansc" {
			return true
		}
	}
	return false
}

// getType is the lazy type-table lookup/creation used throughout loading:
// a Decl's base type is created (or reused) first, then a Derived type is
// created over it if the Decl carries any decoration.
func (b *builder) getType(d Decl) *Type {
	name := d.ToC(true)
	baseName := d.TypeName
	if existing, ok := b.types[name]; ok {
		return existing
	}

	baseTy, ok := b.types[baseName]
	if !ok {
		baseTy = &Type{Name: baseName, ExtAliases: map[string]string{}, Attrs: map[string]any{}}
		b.types[baseName] = baseTy
		b.typeOrder = append(b.typeOrder, baseName)
	}
	if name == baseName {
		return baseTy
	}

	decor := d.Decor
	derived := &Type{
		Name:     name,
		Category: Derived,
		Base:     baseTy,
		Decor:    &decor,
		ExtAliases: map[string]string{},
		Attrs:    map[string]any{},
	}
	b.types[name] = derived
	b.typeOrder = append(b.typeOrder, name)
	return derived
}

func (b *builder) getNamedType(name string) *Type {
	if t, ok := b.types[name]; ok {
		return t
	}
	t := &Type{Name: name, ExtAliases: map[string]string{}, Attrs: map[string]any{}}
	b.types[name] = t
	b.typeOrder = append(b.typeOrder, name)
	return t
}

func (b *builder) mergeDocument(doc *xmlRegistry, isCanonical bool) {
	for _, p := range doc.Platforms.Platform {
		b.platforms[p.Name] = p.Protect
	}
	for _, tg := range doc.Tags.Tag {
		b.tags[tg.Name] = true
	}

	for _, xt := range doc.Types.Type {
		if isVulkanSC(xt.API) {
			continue
		}
		b.parseType(xt)
	}
	for _, eg := range doc.EnumsGroup {
		b.parseEnumsGroup(eg)
	}
	for _, xc := range doc.Commands.Command {
		if isVulkanSC(xc.API) {
			continue
		}
		b.parseCommand(xc)
	}
	for _, xf := range doc.Features {
		if isVulkanSC(xf.API) {
			continue
		}
		b.features = append(b.features, b.parseFeature(xf))
	}
	for _, xe := range doc.Extensions.Extension {
		if isVulkanSC(xe.Supported) {
			continue
		}
		b.extensions = append(b.extensions, b.parseExtension(xe))
	}
}

func (b *builder) parseType(xt xmlType) {
	name := xt.Name
	if name == "" {
		name = xt.InnerName
	}
	if name == "" || TypeBlockList[name] {
		return
	}

	if xt.Alias != "" {
		target := b.getNamedType(xt.Alias)
		target.Aliases = append(target.Aliases, name)
		b.types[name] = target
		return
	}

	ty := b.getNamedType(name)
	ty.Base = ty

	switch xt.Category {
	case "include":
		ty.Category = Include
	case "define":
		ty.Category = Define
		ty.DefineBody = xt.RawXML
	case "basetype":
		ty.Category = BaseType
		if xt.InnerType != "" {
			ty.Typedef = b.getNamedType(xt.InnerType)
		}
	case "handle":
		ty.Category = Handle
		ty.Dispatchable = strings.Contains(xt.RawXML, "VK_DEFINE_HANDLE")
	case "enum":
		ty.Category = Enum
		if ty.EnumValues == nil {
			ty.EnumValues = NewEnumValues()
			ty.EnumBitWidth = 32
		}
	case "bitmask":
		ty.Category = Bitmask
		if xt.InnerType != "" {
			ty.Typedef = b.getNamedType(xt.InnerType)
		}
		if xt.Requires != "" {
			ty.Requires = b.getNamedType(xt.Requires)
		}
	case "struct", "union":
		if xt.Category == "struct" {
			ty.Category = Struct
		} else {
			ty.Category = Union
		}
		ty.ReturnedOnly = xt.ReturnedOnly == "true"
		for _, m := range xt.Member {
			if isVulkanSC(m.API) {
				continue
			}
			ty.Variables = append(ty.Variables, b.parseMember(m))
		}
		if len(ty.Variables) > 0 && ty.Variables[0].Name == "sType" {
			if lit, ok := ty.Variables[0].Attrs["values"].([]string); ok && len(lit) > 0 {
				ty.SType = lit[0]
			}
		}
		if xt.StructExtend != "" {
			for _, e := range strings.Split(xt.StructExtend, ",") {
				ty.StructExtends = append(ty.StructExtends, &Type{Name: strings.TrimSpace(e)})
			}
		}
	case "funcpointer":
		ty.Category = FuncPointer
		b.parseFuncPointerBody(ty, xt.RawXML)
	default:
		ty.Category = Default
	}
}

func (b *builder) parseMember(m xmlMember) *Variable {
	cDecl := strings.TrimSpace(m.RawXML)
	cDecl = stripXMLTags(cDecl)
	decl, err := DeclFromC(cDecl)
	if err != nil {
		// Fall back to the structured name/type fields: some member
		// fragments (bit-fields, anonymous unions) do not round-trip
		// through the generic tag stripper.
		decl = Decl{Name: m.Name, TypeName: m.Type}
	}

	ty := b.getType(decl)
	attrs := map[string]any{}
	if m.Values != "" {
		attrs["values"] = strings.Split(m.Values, ",")
	}
	if m.Len != "" {
		attrs["len_exprs"] = parseLenExprs(m.Len)
	}
	if m.Optional != "" {
		attrs["optional"] = strings.Split(m.Optional, ",")
	}
	if m.NoAutoValidity != "" {
		attrs["noautovalidity"] = m.NoAutoValidity
	}
	if m.Selection != "" {
		attrs["selection"] = strings.Split(m.Selection, ",")
	}
	if m.Selector != "" {
		attrs["selector"] = m.Selector
	}

	return &Variable{Ty: ty, Name: m.Name, Attrs: attrs}
}

// parseLenExprs splits a "len" attribute into its comma-separated entries,
// each becoming (expression, principal sibling name). "null-terminated" is
// preserved verbatim; "a->b" or "a[i].b" yield principal name "b".
func parseLenExprs(raw string) []LenExpr {
	parts := strings.Split(raw, ",")
	out := make([]LenExpr, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		principal := p
		if p != "null-terminated" {
			if idx := strings.LastIndex(p, "->"); idx != -1 {
				principal = p[idx+2:]
			} else if idx := strings.LastIndex(p, "[i]."); idx != -1 {
				principal = p[idx+4:]
			}
		}
		out = append(out, LenExpr{Expr: p, Principal: principal})
	}
	return out
}

func (b *builder) parseFuncPointerBody(ty *Type, rawXML string) {
	// The funcpointer's typedef and parameter list are not parsed: rawXML
	// is not read, and the type is left with no return value and no
	// Variables.
	ty.Variables = nil
}

func (b *builder) parseEnumsGroup(eg xmlEnumsGroup) {
	if eg.Name == "" || eg.Name == "API Constants" {
		return
	}
	ty := b.getNamedType(eg.Name)
	if ty.Category != Enum && ty.Category != Bitmask {
		ty.Category = Enum
		ty.Base = ty
	}
	if ty.EnumValues == nil {
		ty.EnumValues = NewEnumValues()
	}
	if eg.Bits == "64" {
		ty.EnumBitWidth = 64
	} else if ty.EnumBitWidth == 0 {
		ty.EnumBitWidth = 32
	}

	for _, e := range eg.Enum {
		if isVulkanSC(e.API) {
			continue
		}
		if e.Alias != "" {
			ty.EnumValues.Set(e.Name, e.Alias)
			continue
		}
		lit := e.Value
		if lit == "" && e.Bitpos != "" {
			bp, _ := strconv.Atoi(e.Bitpos)
			lit = fmt.Sprintf("0x%x", uint64(1)<<uint(bp))
		}
		ty.EnumValues.Set(e.Name, lit)
	}
}

func (b *builder) parseCommand(xc xmlCommand) {
	name := xc.Name
	if name == "" {
		name = xc.Proto.Name
	}
	if xc.Alias != "" {
		target := b.getNamedType(xc.Alias)
		target.Aliases = append(target.Aliases, name)
		b.types[name] = target
		return
	}

	ty := b.getNamedType(name)
	ty.Base = ty
	ty.Category = Command
	ty.CanDeviceLost = strings.Contains(xc.ErrorCodes, "VK_ERROR_DEVICE_LOST")

	if xc.Proto.Type != "" && xc.Proto.Type != "void" {
		retTy := b.getNamedType(xc.Proto.Type)
		ty.Ret = &Variable{Ty: retTy, Name: "result"}
	}

	for _, p := range xc.Param {
		if isVulkanSC(p.API) {
			continue
		}
		ty.Variables = append(ty.Variables, b.parseMember(p))
	}
}

func (b *builder) parseFeature(xf xmlFeature) *Feature {
	f := &Feature{API: xf.API, Name: xf.Name, Number: xf.Number}
	for _, req := range xf.Require {
		if isVulkanSC(req.API) {
			continue
		}
		for _, rt := range req.Type {
			if t, ok := b.types[rt.Name]; ok {
				f.Types = append(f.Types, t)
			}
		}
		for _, rc := range req.Command {
			if t, ok := b.types[rc.Name]; ok {
				f.Types = append(f.Types, t)
			}
		}
		b.applyRequireEnums(req.Enum, nil)
	}
	return f
}

func (b *builder) applyRequireEnums(enums []xmlRequireEnum, ext *xmlExtension) {
	for _, re := range enums {
		if isVulkanSC(re.API) || re.Extends == "" {
			continue
		}
		target, ok := b.types[re.Extends]
		if !ok || target.EnumValues == nil {
			continue
		}
		if re.Alias != "" {
			target.EnumValues.Set(re.Name, re.Alias)
			continue
		}
		var lit string
		switch {
		case re.Value != "":
			lit = re.Value
		case re.Bitpos != "":
			bp, _ := strconv.Atoi(re.Bitpos)
			lit = fmt.Sprintf("0x%x", uint64(1)<<uint(bp))
		case re.Offset != "" && ext != nil:
			lit = extensionEnumValue(ext, re.Offset, re.Dir)
		}
		if lit != "" {
			target.EnumValues.Set(re.Name, lit)
		}
	}
}

// extensionEnumValue computes an extension-block enum value from its
// number and offset, matching the registry's documented formula:
// 1000000000 + (extNumber-1)*1000 + offset, negated when dir == "-".
func extensionEnumValue(ext *xmlExtension, offset, dir string) string {
	extNum, _ := strconv.Atoi(ext.Number)
	off, _ := strconv.Atoi(offset)
	val := 1000000000 + (extNum-1)*1000 + off
	if dir == "-" {
		val = -val
	}
	return strconv.Itoa(val)
}

func (b *builder) parseExtension(xe xmlExtension) *Extension {
	num, _ := strconv.Atoi(xe.Number)
	ext := &Extension{
		Name:          xe.Name,
		Number:        num,
		Platform:      xe.Platform,
		PromotedTo:    xe.PromotedTo,
		SpecVersion:   xe.SpecVersion,
		OptionalTypes: map[*Type]DependsExpr{},
	}
	if xe.Type != "" {
		ext.SupportedAPIs = strings.Split(xe.Type, ",")
	}
	if xe.Requires != "" {
		ext.Requires = strings.Split(xe.Requires, ",")
	}

	for _, req := range xe.Require {
		if isVulkanSC(req.API) {
			continue
		}
		depends := req.Depends
		var types []*Type
		for _, rt := range req.Type {
			if t, ok := b.types[rt.Name]; ok {
				types = append(types, t)
			}
		}
		for _, rc := range req.Command {
			if t, ok := b.types[rc.Name]; ok {
				types = append(types, t)
			}
		}
		if depends == "" {
			ext.Types = append(ext.Types, types...)
		} else if filtered := FilterDepends(ParseDepends(depends)); filtered != nil {
			for _, t := range types {
				ext.OptionalTypes[t] = filtered
			}
		} else {
			ext.Types = append(ext.Types, types...)
		}
		b.applyRequireEnums(req.Enum, &xe)
	}
	return ext
}

// stripXMLTags removes the <type>/<name>/<enum> element markup surrounding
// a member's inner C-declaration fragment, leaving the plain text the
// declaration parser expects (encoding/xml's RawXML capture includes the
// tags verbatim since the field is unmarshalled via ",innerxml").
func stripXMLTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func (b *builder) finish() (*Registry, error) {
	order := append([]string(nil), b.typeOrder...)

	reg := &Registry{
		Platforms:  b.platforms,
		Tags:       b.tags,
		TypeTable:  b.types,
		TypeOrder:  order,
		Features:   b.features,
		Extensions: b.extensions,
	}
	return reg, nil
}
