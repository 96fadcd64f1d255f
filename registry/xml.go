package registry

import "encoding/xml"

// The structs below map directly onto the Vulkan registry XML schema via
// encoding/xml struct tags, grounded on the vk-gen registry parser (one of
// the retrieved example programs): one struct per registry element, with
// attributes tagged ",attr" and mixed text/comment content tagged
// ",innerxml" where the declaration parser needs the raw fragment.

type xmlRegistry struct {
	XMLName    xml.Name         `xml:"registry"`
	Platforms  xmlPlatforms     `xml:"platforms"`
	Tags       xmlTags          `xml:"tags"`
	Types      xmlTypesSection  `xml:"types"`
	EnumsGroup []xmlEnumsGroup  `xml:"enums"`
	Commands   xmlCommandsGroup `xml:"commands"`
	Features   []xmlFeature     `xml:"feature"`
	Extensions xmlExtensions    `xml:"extensions"`
}

type xmlPlatforms struct {
	Platform []xmlPlatform `xml:"platform"`
}

type xmlPlatform struct {
	Name    string `xml:"name,attr"`
	Protect string `xml:"protect,attr"`
}

type xmlTags struct {
	Tag []xmlTag `xml:"tag"`
}

type xmlTag struct {
	Name string `xml:"name,attr"`
}

type xmlTypesSection struct {
	Type []xmlType `xml:"type"`
}

type xmlType struct {
	Name         string      `xml:"name,attr"`
	Category     string      `xml:"category,attr"`
	Alias        string      `xml:"alias,attr"`
	Requires     string      `xml:"requires,attr"`
	Parent       string      `xml:"parent,attr"`
	ReturnedOnly string      `xml:"returnedonly,attr"`
	StructExtend string      `xml:"structextends,attr"`
	API          string      `xml:"api,attr"`
	InnerName    string      `xml:"name"`
	InnerType    string      `xml:"type"`
	Member       []xmlMember `xml:"member"`
	RawXML       string      `xml:",innerxml"`
}

type xmlMember struct {
	Name           string `xml:"name"`
	Type           string `xml:"type"`
	Enum           string `xml:"enum"`
	Values         string `xml:"values,attr"`
	Len            string `xml:"len,attr"`
	Optional       string `xml:"optional,attr"`
	NoAutoValidity string `xml:"noautovalidity,attr"`
	Selection      string `xml:"selection,attr"`
	Selector       string `xml:"selector,attr"`
	API            string `xml:"api,attr"`
	RawXML         string `xml:",innerxml"`
}

type xmlEnumsGroup struct {
	Name  string    `xml:"name,attr"`
	Type  string    `xml:"type,attr"`
	Bits  string    `xml:"bitwidth,attr"`
	Enum  []xmlEnum `xml:"enum"`
}

type xmlEnum struct {
	Name    string `xml:"name,attr"`
	Value   string `xml:"value,attr"`
	Bitpos  string `xml:"bitpos,attr"`
	Alias   string `xml:"alias,attr"`
	API     string `xml:"api,attr"`
}

type xmlCommandsGroup struct {
	Command []xmlCommand `xml:"command"`
}

type xmlCommand struct {
	Alias        string        `xml:"alias,attr"`
	Name         string        `xml:"name,attr"`
	API          string        `xml:"api,attr"`
	Proto        xmlCommandSig `xml:"proto"`
	Param        []xmlMember   `xml:"param"`
	ErrorCodes   string        `xml:"errorcodes,attr"`
}

type xmlCommandSig struct {
	Type string `xml:"type"`
	Name string `xml:"name"`
}

type xmlFeature struct {
	API     string       `xml:"api,attr"`
	Name    string       `xml:"name,attr"`
	Number  string       `xml:"number,attr"`
	Require []xmlRequire `xml:"require"`
}

type xmlRequire struct {
	API      string           `xml:"api,attr"`
	Depends  string           `xml:"depends,attr"`
	Type     []xmlRequireName `xml:"type"`
	Enum     []xmlRequireEnum `xml:"enum"`
	Command  []xmlRequireName `xml:"command"`
}

type xmlRequireName struct {
	Name string `xml:"name,attr"`
	API  string `xml:"api,attr"`
}

type xmlRequireEnum struct {
	Name    string `xml:"name,attr"`
	Extends string `xml:"extends,attr"`
	Value   string `xml:"value,attr"`
	Bitpos  string `xml:"bitpos,attr"`
	Offset  string `xml:"offset,attr"`
	Dir     string `xml:"dir,attr"`
	Alias   string `xml:"alias,attr"`
	API     string `xml:"api,attr"`
}

type xmlExtensions struct {
	Extension []xmlExtension `xml:"extension"`
}

type xmlExtension struct {
	Name            string       `xml:"name,attr"`
	Number          string       `xml:"number,attr"`
	Type            string       `xml:"type,attr"`
	Platform        string       `xml:"platform,attr"`
	Supported       string       `xml:"supported,attr"`
	PromotedTo      string       `xml:"promotedto,attr"`
	Requires        string       `xml:"requires,attr"`
	RequiresCore    string       `xml:"requiresCore,attr"`
	SpecVersion     string       `xml:"specversion,attr"`
	Require         []xmlRequire `xml:"require"`
}
