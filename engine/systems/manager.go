package systems

import (
	"github.com/spaghettifunk/tangram/engine/renderer"
)

type SystemManager struct {
	jobSystem    *JobSystem
	cameraSystem *CameraSystem
	meshSystem   *MeshSystem
	shaderSystem *ShaderSystem
	sceneSystem  *SceneSystem
}

func NewSystemManager(renderer *renderer.Renderer, cameraConfig *CameraSystemConfig) (*SystemManager, error) {
	js, err := NewJobSystem(2, 16)
	if err != nil {
		return nil, err
	}
	cs, err := NewCameraSystem(cameraConfig)
	if err != nil {
		js.Shutdown()
		return nil, err
	}
	ssys, err := NewShaderSystem(renderer)
	if err != nil {
		return nil, err
	}
	ms, err := NewMeshSystem(renderer)
	if err != nil {
		return nil, err
	}
	scs, err := NewSceneSystem(renderer, ms, ssys, cs)
	if err != nil {
		return nil, err
	}
	return &SystemManager{
		jobSystem:    js,
		cameraSystem: cs,
		meshSystem:   ms,
		shaderSystem: ssys,
		sceneSystem:  scs,
	}, nil
}

func (sm *SystemManager) Jobs() *JobSystem {
	return sm.jobSystem
}

func (sm *SystemManager) Cameras() *CameraSystem {
	return sm.cameraSystem
}

func (sm *SystemManager) Meshes() *MeshSystem {
	return sm.meshSystem
}

func (sm *SystemManager) Shaders() *ShaderSystem {
	return sm.shaderSystem
}

func (sm *SystemManager) Scene() *SceneSystem {
	return sm.sceneSystem
}

// Shutdown stops the systems in reverse creation order.
func (sm *SystemManager) Shutdown() error {
	if err := sm.sceneSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.meshSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.shaderSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.cameraSystem.Shutdown(); err != nil {
		return err
	}
	return sm.jobSystem.Shutdown()
}
