package opengl

const chunkVertexShader = `#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec4 aColor;

uniform mat4 model;
uniform mat4 view;
uniform mat4 proj;

out vec3 Normal;
out vec4 Color;

void main() {
    Normal = aNormal;
    Color = aColor;
    gl_Position = proj * view * model * vec4(aPos, 1.0);
}
`

const chunkFragmentShader = `#version 410 core
in vec3 Normal;
in vec4 Color;

out vec4 FragColor;

const vec3 lightDir = normalize(vec3(0.4, 1.0, 0.3));

void main() {
    float shade = 0.55 + 0.45 * max(dot(normalize(Normal), lightDir), 0.0);
    FragColor = vec4(Color.rgb * shade, Color.a);
}
`

// overlay quad: aPos in pixels from the top-left corner
const overlayVertexShader = `#version 410 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aUV;

uniform vec2 screen;

out vec2 UV;

void main() {
    vec2 ndc = vec2(aPos.x / screen.x * 2.0 - 1.0, 1.0 - aPos.y / screen.y * 2.0);
    UV = aUV;
    gl_Position = vec4(ndc, 0.0, 1.0);
}
`

const overlayFragmentShader = `#version 410 core
in vec2 UV;

uniform sampler2D tex;

out vec4 FragColor;

void main() {
    FragColor = texture(tex, UV);
}
`
