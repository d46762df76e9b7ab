package bindgen

import (
	"github.com/teranos/glbind/registry"
)

// miniRegistry is a hand-built gl registry with the irregularities real
// registries have: duplicate and dangling group members, aliased constants and
// commands with fallbacks.
func miniRegistry() *registry.Registry {
	return &registry.Registry{
		Identity: registry.Identity{API: registry.APIGl, Version: "4.5", Profile: registry.ProfileCore, Fallbacks: registry.FallbacksAll},
		Enums: []registry.Enum{
			{Ident: "ZERO", Value: "0"},
			{Ident: "ONE", Value: "1"},
			{Ident: "FALSE", Value: "0", Type: "GLboolean"},
			{Ident: "TRUE", Value: "1", Type: "GLboolean"},
			{Ident: "SRC_ALPHA", Value: "0x0302"},
			{Ident: "BLEND", Value: "0x0BE2"},
			{Ident: "DEPTH_TEST", Value: "0x0B71"},
			{Ident: "COLOR_BUFFER_BIT", Value: "0x00004000"},
			{Ident: "DEPTH_BUFFER_BIT", Value: "0x00000100"},
		},
		Cmds: []registry.Command{
			{Ident: "Enable", Params: []registry.Param{{Ident: "cap", Type: "GLenum", Group: "EnableCap"}}},
			{Ident: "BlendFunc", Params: []registry.Param{
				{Ident: "sfactor", Type: "GLenum", Group: "BlendingFactor"},
				{Ident: "dfactor", Type: "GLenum", Group: "BlendingFactor"},
			}},
			{Ident: "Clear", Params: []registry.Param{{Ident: "mask", Type: "GLbitfield", Group: "ClearBufferMask"}}},
			{Ident: "IsEnabled", Return: "GLboolean", Params: []registry.Param{{Ident: "cap", Type: "GLenum", Group: "EnableCap"}}},
			{Ident: "ActiveTexture", Params: []registry.Param{{Ident: "texture", Type: "GLenum", Group: "TextureUnit"}}},
			{Ident: "DebugMessageControl", Params: []registry.Param{
				{Ident: "type", Type: "GLenum"},
				{Ident: "ids", Type: "*GLuint"},
				{Ident: "enabled", Type: "GLboolean", Group: "Boolean"},
			}},
		},
		Aliases: map[string][]string{
			"ActiveTexture": {"ActiveTextureARB", "ActiveTextureEXT"},
		},
		Groups: map[string]registry.Group{
			"Boolean":         {Ident: "Boolean", Enums: []string{"FALSE", "TRUE"}},
			"EnableCap":       {Ident: "EnableCap", Enums: []string{"BLEND", "DEPTH_TEST", "BLEND", "SCISSOR_TEST"}},
			"BlendingFactor":  {Ident: "BlendingFactor", Enums: []string{"ZERO", "ONE", "SRC_ALPHA"}},
			"ClearBufferMask": {Ident: "ClearBufferMask", Enums: []string{"COLOR_BUFFER_BIT", "DEPTH_BUFFER_BIT"}, Flavor: registry.FlavorBitmask},
		},
	}
}
