package renderer

const starVertexSrc = `
#version 410 core

layout (location = 0) in float aScale;
layout (location = 1) in vec2 aPos;

uniform mat4 uProjection;
uniform float uDiameter;

out float vAlpha;

void main() {
	float size = aScale * uDiameter;
	gl_Position = uProjection * vec4(aPos + vec2(aScale * 0.5), 0.0, 1.0);
	gl_PointSize = max(size, 1.0);
	// Stars smaller than a pixel fade instead of shrinking.
	vAlpha = clamp(size, 0.0, 1.0);
}
`

const starFragmentSrc = `
#version 410 core

in float vAlpha;
out vec4 FragColor;

void main() {
	float r = length(gl_PointCoord - vec2(0.5));
	if (r > 0.5) {
		discard;
	}
	float edge = 1.0 - smoothstep(0.4, 0.5, r);
	FragColor = vec4(1.0, 1.0, 1.0, edge * vAlpha);
}
`

const lineVertexSrc = `
#version 410 core

layout (location = 0) in vec2 aPos;
layout (location = 1) in vec3 aColor;

uniform mat4 uProjection;
uniform vec2 uOrigin;

out vec3 vColor;

void main() {
	gl_Position = uProjection * vec4(aPos + uOrigin, 0.0, 1.0);
	vColor = aColor;
}
`

const lineFragmentSrc = `
#version 410 core

in vec3 vColor;
out vec4 FragColor;

void main() {
	FragColor = vec4(vColor, 1.0);
}
`
