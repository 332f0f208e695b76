package graphics

import (
	"mesh-creator/internal/geom"
	"mesh-creator/internal/viewport"

	"cogentcore.org/core/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// loadLitShader returns a shader doing one directional light plus ambient with a
// Blinn-Phong highlight. Same vertex attributes as raylib meshes: vertexPosition, vertexTexCoord, vertexNormal.
func loadLitShader() rl.Shader {
	return rl.LoadShaderFromMemory(litVS, litFS)
}

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 mvp;
uniform mat4 matModel;
uniform mat4 matNormal;
out vec3 fragPosition;
out vec3 fragNormal;
void main() {
  fragPosition = vec3(matModel * vec4(vertexPosition, 1.0));
  fragNormal = normalize(vec3(matNormal * vec4(vertexNormal, 0.0)));
  gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`
	litFS = `#version 330
in vec3 fragPosition;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec3 ambient;
uniform vec3 lightColor;
uniform float specularPower;
uniform float specularStrength;
uniform float metalness;
out vec4 finalColor;
void main() {
  vec3 base = colDiffuse.rgb;
  vec3 N = normalize(fragNormal);
  if (!gl_FrontFacing) N = -N;
  vec3 L = normalize(lightDir);
  vec3 V = normalize(viewPos - fragPosition);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = base * (1.0 - metalness * 0.5) * NdotL * lightColor;
  vec3 H = normalize(L + V);
  float spec = pow(max(dot(N, H), 0.0), specularPower) * specularStrength;
  vec3 specTint = mix(vec3(1.0), base, metalness);
  vec3 specular = lightColor * specTint * spec * (NdotL > 0.0 ? 1.0 : 0.0);
  finalColor = vec4(ambient * base + diffuse + specular, colDiffuse.a);
}
`
)

// setLitUniforms sets camera, light and material terms on shader (cgo-safe: local arrays).
// Rough surfaces get a wide, faint highlight; smooth ones a tight, bright one.
func setLitUniforms(shader rl.Shader, eye math32.Vector3, light viewport.Lighting, m *geom.Material) {
	if !rl.IsShaderValid(shader) {
		return
	}
	dir := math32.Vec3(light.Directional.Position[0], light.Directional.Position[1], light.Directional.Position[2])
	if l := dir.Length(); l > 0 {
		dir = dir.MulScalar(1 / l)
	}
	viewPos := []float32{eye.X, eye.Y, eye.Z}
	lightDir := []float32{dir.X, dir.Y, dir.Z}
	amb := scaledRGB(light.Ambient)
	lc := scaledRGB(light.Directional)
	smooth := 1 - m.Roughness
	power := []float32{4 + smooth*smooth*124}
	strength := []float32{0.05 + smooth*0.6}
	metal := []float32{m.Metalness}

	setVec3(shader, "viewPos", viewPos)
	setVec3(shader, "lightDir", lightDir)
	setVec3(shader, "ambient", amb)
	setVec3(shader, "lightColor", lc)
	setFloat(shader, "specularPower", power)
	setFloat(shader, "specularStrength", strength)
	setFloat(shader, "metalness", metal)
}

// scaledRGB returns the light color in [0,1] multiplied by its intensity.
func scaledRGB(l viewport.Light) []float32 {
	return []float32{
		float32(l.Color>>16&0xff) / 255 * l.Intensity,
		float32(l.Color>>8&0xff) / 255 * l.Intensity,
		float32(l.Color&0xff) / 255 * l.Intensity,
	}
}

func setVec3(shader rl.Shader, name string, v []float32) {
	if loc := rl.GetShaderLocation(shader, name); loc >= 0 {
		rl.SetShaderValueV(shader, loc, v, rl.ShaderUniformVec3, 1)
	}
}

func setFloat(shader rl.Shader, name string, v []float32) {
	if loc := rl.GetShaderLocation(shader, name); loc >= 0 {
		rl.SetShaderValue(shader, loc, v, rl.ShaderUniformFloat)
	}
}
