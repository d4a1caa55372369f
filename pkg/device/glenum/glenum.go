// pkg/device/glenum/glenum.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package glenum holds the native OpenGL constants used by the renderer.
// The values are identical across the 2.1 and 3.3 bindings (extension
// enums included), so the renderer can be written against this one table
// and handed to either device.
package glenum

const (
	FALSE = 0
	TRUE  = 1
	NONE  = 0
	ZERO  = 0
	ONE   = 1

	// Errors
	NO_ERROR                      = 0
	INVALID_ENUM                  = 0x0500
	INVALID_VALUE                 = 0x0501
	INVALID_OPERATION             = 0x0502
	OUT_OF_MEMORY                 = 0x0505
	INVALID_FRAMEBUFFER_OPERATION = 0x0506

	// Primitives
	POINTS         = 0x0000
	LINES          = 0x0001
	LINE_LOOP      = 0x0002
	LINE_STRIP     = 0x0003
	TRIANGLES      = 0x0004
	TRIANGLE_STRIP = 0x0005
	TRIANGLE_FAN   = 0x0006
	PATCHES        = 0x000E

	// Comparison functions
	NEVER    = 0x0200
	LESS     = 0x0201
	EQUAL    = 0x0202
	LEQUAL   = 0x0203
	GREATER  = 0x0204
	NOTEQUAL = 0x0205
	GEQUAL   = 0x0206
	ALWAYS   = 0x0207

	// Blend factors and equations
	SRC_COLOR                 = 0x0300
	ONE_MINUS_SRC_COLOR       = 0x0301
	SRC_ALPHA                 = 0x0302
	ONE_MINUS_SRC_ALPHA       = 0x0303
	DST_ALPHA                 = 0x0304
	ONE_MINUS_DST_ALPHA       = 0x0305
	DST_COLOR                 = 0x0306
	ONE_MINUS_DST_COLOR       = 0x0307
	SRC_ALPHA_SATURATE        = 0x0308
	FUNC_ADD                  = 0x8006
	MIN                       = 0x8007
	MAX                       = 0x8008
	FUNC_SUBTRACT             = 0x800A
	FUNC_REVERSE_SUBTRACT     = 0x800B
	FRONT                     = 0x0404
	BACK                      = 0x0405
	FRONT_AND_BACK            = 0x0408
	POINT                     = 0x1B00
	LINE                      = 0x1B01
	FILL                      = 0x1B02
	KEEP                      = 0x1E00
	REPLACE                   = 0x1E01
	INCR                      = 0x1E02
	DECR                      = 0x1E03
	INVERT                    = 0x150A
	INCR_WRAP                 = 0x8507
	DECR_WRAP                 = 0x8508
	COLOR_BUFFER_BIT          = 0x4000
	DEPTH_BUFFER_BIT          = 0x0100
	STENCIL_BUFFER_BIT        = 0x0400
	CULL_FACE                 = 0x0B44
	DEPTH_TEST                = 0x0B71
	STENCIL_TEST              = 0x0B90
	ALPHA_TEST                = 0x0BC0
	BLEND                     = 0x0BE2
	SCISSOR_TEST              = 0x0C11
	POLYGON_OFFSET_FILL       = 0x8037
	MULTISAMPLE               = 0x809D
	POINT_SPRITE              = 0x8861
	PROGRAM_POINT_SIZE        = 0x8642
	FRAMEBUFFER_SRGB          = 0x8DB9
	TEXTURE_CUBE_MAP_SEAMLESS = 0x884F

	// Component types
	BYTE                           = 0x1400
	UNSIGNED_BYTE                  = 0x1401
	SHORT                          = 0x1402
	UNSIGNED_SHORT                 = 0x1403
	INT                            = 0x1404
	UNSIGNED_INT                   = 0x1405
	FLOAT                          = 0x1406
	DOUBLE                         = 0x140A
	HALF_FLOAT                     = 0x140B
	UNSIGNED_SHORT_4_4_4_4         = 0x8033
	UNSIGNED_SHORT_5_5_5_1         = 0x8034
	UNSIGNED_SHORT_5_6_5           = 0x8363
	UNSIGNED_INT_2_10_10_10_REV    = 0x8368
	UNSIGNED_INT_24_8              = 0x84FA
	UNSIGNED_INT_10F_11F_11F_REV   = 0x8C3B
	UNSIGNED_INT_5_9_9_9_REV       = 0x8C3E
	FLOAT_32_UNSIGNED_INT_24_8_REV = 0x8DAD

	// Pixel formats
	STENCIL_INDEX   = 0x1901
	DEPTH_COMPONENT = 0x1902
	RED             = 0x1903
	ALPHA           = 0x1906
	RGB             = 0x1907
	RGBA            = 0x1908
	LUMINANCE       = 0x1909
	LUMINANCE_ALPHA = 0x190A
	BGR             = 0x80E0
	BGRA            = 0x80E1
	RG              = 0x8227
	DEPTH_STENCIL   = 0x84F9

	// Internal formats
	ALPHA8             = 0x803C
	LUMINANCE8         = 0x8040
	LUMINANCE8_ALPHA8  = 0x8045
	INTENSITY          = 0x8049
	RGBA4              = 0x8056
	RGB5_A1            = 0x8057
	RGB8               = 0x8051
	RGBA8              = 0x8058
	RGB10_A2           = 0x8059
	DEPTH_COMPONENT16  = 0x81A5
	DEPTH_COMPONENT24  = 0x81A6
	DEPTH_COMPONENT32  = 0x81A7
	R8                 = 0x8229
	RG8                = 0x822B
	R16F               = 0x822D
	R32F               = 0x822E
	RG16F              = 0x822F
	RG32F              = 0x8230
	RGBA32F            = 0x8814
	RGB32F             = 0x8815
	LUMINANCE32F       = 0x8818
	RGBA16F            = 0x881A
	RGB16F             = 0x881B
	LUMINANCE16F       = 0x881E
	LUMINANCE_ALPHA16F = 0x881F
	DEPTH24_STENCIL8   = 0x88F0
	R11F_G11F_B10F     = 0x8C3A
	RGB9_E5            = 0x8C3D
	SRGB8              = 0x8C41
	SRGB8_ALPHA8       = 0x8C43
	SLUMINANCE8_ALPHA8 = 0x8C45
	SLUMINANCE8        = 0x8C47
	DEPTH_COMPONENT32F = 0x8CAC
	DEPTH32F_STENCIL8  = 0x8CAD
	RGB565             = 0x8D62

	// Compressed formats
	COMPRESSED_RGB_S3TC_DXT1_EXT             = 0x83F0
	COMPRESSED_RGBA_S3TC_DXT1_EXT            = 0x83F1
	COMPRESSED_RGBA_S3TC_DXT3_EXT            = 0x83F2
	COMPRESSED_RGBA_S3TC_DXT5_EXT            = 0x83F3
	COMPRESSED_SRGB_S3TC_DXT1_EXT            = 0x8C4C
	COMPRESSED_SRGB_ALPHA_S3TC_DXT1_EXT      = 0x8C4D
	COMPRESSED_SRGB_ALPHA_S3TC_DXT3_EXT      = 0x8C4E
	COMPRESSED_SRGB_ALPHA_S3TC_DXT5_EXT      = 0x8C4F
	ETC1_RGB8_OES                            = 0x8D64
	COMPRESSED_RGB8_ETC2                     = 0x9274
	COMPRESSED_RGB8_PUNCHTHROUGH_ALPHA1_ETC2 = 0x9276
	COMPRESSED_RGBA8_ETC2_EAC                = 0x9278

	// Textures
	TEXTURE_1D                  = 0x0DE0
	TEXTURE_2D                  = 0x0DE1
	TEXTURE_3D                  = 0x806F
	TEXTURE_2D_ARRAY            = 0x8C1A
	TEXTURE_CUBE_MAP            = 0x8513
	TEXTURE_CUBE_MAP_POSITIVE_X = 0x8515
	TEXTURE_2D_MULTISAMPLE      = 0x9100
	TEXTURE0                    = 0x84C0
	TEXTURE_MAG_FILTER          = 0x2800
	TEXTURE_MIN_FILTER          = 0x2801
	TEXTURE_WRAP_S              = 0x2802
	TEXTURE_WRAP_T              = 0x2803
	TEXTURE_WRAP_R              = 0x8072
	NEAREST                     = 0x2600
	LINEAR                      = 0x2601
	NEAREST_MIPMAP_NEAREST      = 0x2700
	LINEAR_MIPMAP_NEAREST       = 0x2701
	NEAREST_MIPMAP_LINEAR       = 0x2702
	LINEAR_MIPMAP_LINEAR        = 0x2703
	CLAMP                       = 0x2900
	REPEAT                      = 0x2901
	CLAMP_TO_BORDER             = 0x812D
	CLAMP_TO_EDGE               = 0x812F
	MIRRORED_REPEAT             = 0x8370
	TEXTURE_BASE_LEVEL          = 0x813C
	TEXTURE_MAX_LEVEL           = 0x813D
	GENERATE_MIPMAP             = 0x8191
	TEXTURE_MAX_ANISOTROPY_EXT  = 0x84FE
	DEPTH_TEXTURE_MODE          = 0x884B
	TEXTURE_COMPARE_MODE        = 0x884C
	TEXTURE_COMPARE_FUNC        = 0x884D
	COMPARE_REF_TO_TEXTURE      = 0x884E
	UNPACK_ALIGNMENT            = 0x0CF5
	PACK_ALIGNMENT              = 0x0D05

	// Buffers
	ARRAY_BUFFER         = 0x8892
	ELEMENT_ARRAY_BUFFER = 0x8893
	STREAM_DRAW          = 0x88E0
	STATIC_DRAW          = 0x88E4
	DYNAMIC_DRAW         = 0x88E8

	// Shaders
	FRAGMENT_SHADER        = 0x8B30
	VERTEX_SHADER          = 0x8B31
	GEOMETRY_SHADER        = 0x8DD9
	TESS_EVALUATION_SHADER = 0x8E87
	TESS_CONTROL_SHADER    = 0x8E88
	COMPILE_STATUS         = 0x8B81
	LINK_STATUS            = 0x8B82
	INFO_LOG_LENGTH        = 0x8B84

	// Framebuffers
	FRAMEBUFFER                               = 0x8D40
	READ_FRAMEBUFFER                          = 0x8CA8
	DRAW_FRAMEBUFFER                          = 0x8CA9
	RENDERBUFFER                              = 0x8D41
	COLOR_ATTACHMENT0                         = 0x8CE0
	DEPTH_ATTACHMENT                          = 0x8D00
	STENCIL_ATTACHMENT                        = 0x8D20
	DEPTH_STENCIL_ATTACHMENT                  = 0x821A
	FRAMEBUFFER_UNDEFINED                     = 0x8219
	FRAMEBUFFER_COMPLETE                      = 0x8CD5
	FRAMEBUFFER_INCOMPLETE_ATTACHMENT         = 0x8CD6
	FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT = 0x8CD7
	FRAMEBUFFER_INCOMPLETE_DIMENSIONS_EXT     = 0x8CD9
	FRAMEBUFFER_INCOMPLETE_FORMATS_EXT        = 0x8CDA
	FRAMEBUFFER_INCOMPLETE_DRAW_BUFFER        = 0x8CDB
	FRAMEBUFFER_INCOMPLETE_READ_BUFFER        = 0x8CDC
	FRAMEBUFFER_UNSUPPORTED                   = 0x8CDD
	FRAMEBUFFER_INCOMPLETE_MULTISAMPLE        = 0x8D56
	FRAMEBUFFER_INCOMPLETE_LAYER_TARGETS      = 0x8DA8

	// Queries
	VENDOR                         = 0x1F00
	RENDERER                       = 0x1F01
	VERSION                        = 0x1F02
	EXTENSIONS                     = 0x1F03
	SHADING_LANGUAGE_VERSION       = 0x8B8C
	NUM_EXTENSIONS                 = 0x821D
	MAX_LIGHTS                     = 0x0D31
	MAX_TEXTURE_SIZE               = 0x0D33
	MAX_3D_TEXTURE_SIZE            = 0x8073
	MAX_CUBE_MAP_TEXTURE_SIZE      = 0x851C
	MAX_RENDERBUFFER_SIZE          = 0x84E8
	MAX_TEXTURE_MAX_ANISOTROPY_EXT = 0x84FF
	MAX_DRAW_BUFFERS               = 0x8824
	MAX_VERTEX_ATTRIBS             = 0x8869
	MAX_TEXTURE_IMAGE_UNITS        = 0x8872
	MAX_ARRAY_TEXTURE_LAYERS       = 0x88FF
	MAX_COLOR_ATTACHMENTS          = 0x8CDF
	MAX_SAMPLES                    = 0x8D57
	MAX_COLOR_TEXTURE_SAMPLES      = 0x910E
	MAX_DEPTH_TEXTURE_SAMPLES      = 0x910F

	// Fixed-function pipeline
	MODELVIEW                = 0x1700
	PROJECTION               = 0x1701
	LIGHTING                 = 0x0B50
	LIGHT_MODEL_LOCAL_VIEWER = 0x0B51
	LIGHT_MODEL_AMBIENT      = 0x0B53
	COLOR_MATERIAL           = 0x0B57
	NORMALIZE                = 0x0BA1
	LIGHT0                   = 0x4000
	AMBIENT                  = 0x1200
	DIFFUSE                  = 0x1201
	SPECULAR                 = 0x1202
	POSITION                 = 0x1203
	SPOT_DIRECTION           = 0x1204
	SPOT_EXPONENT            = 0x1205
	SPOT_CUTOFF              = 0x1206
	CONSTANT_ATTENUATION     = 0x1207
	LINEAR_ATTENUATION       = 0x1208
	QUADRATIC_ATTENUATION    = 0x1209
	EMISSION                 = 0x1600
	SHININESS                = 0x1601
	AMBIENT_AND_DIFFUSE      = 0x1602
	SMOOTH                   = 0x1D01
	TEXTURE_ENV              = 0x2300
	TEXTURE_ENV_MODE         = 0x2200
	MODULATE                 = 0x2100
	COORD_REPLACE            = 0x8862
)
